// Package network turns the canonical network description of a Gerrit
// cluster into the entrypoint objects of one ingress technology.
//
// Every strategy serves the same routing table, computed once by Routes
// and SSHRoutes:
//
//   - receiver paths (/a/projects/*, /new/*, /git/*) go to the receiver,
//   - git fetches (info/refs?service=git-upload-pack and POST git-upload-pack)
//     go to a replica when one exists,
//   - everything else goes to the primary, or to the replica when the
//     cluster has no primary,
//   - SSH is routed per member on the member's SSH port.
//
// The strategy is selected once at startup from the operator configuration.
package network
