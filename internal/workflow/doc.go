// Package workflow evaluates a graph of dependent-resource producers against
// one primary resource.
//
// # Graph
//
// A Graph is a static set of named Nodes, built once per controller type.
// Each Node declares the ids it depends on; registration fails fast on a
// duplicate id or on a dependency that would close a cycle. Dependencies are
// both an ordering and a data relation: a Node's IsActive and Produce
// functions receive the Outputs of every node evaluated before it.
//
// # Execution
//
// The Executor walks the graph in topological order (ties broken by node id)
// and applies each node sequentially:
//
//   - inactive nodes delete whatever they previously created;
//   - Single nodes resolve their live object by a deterministic name;
//   - Bulk nodes list their children by label and diff desired against
//     existing keys, deleting orphans.
//
// Desired objects are compared to live objects with subset semantics: only
// fields the producer sets are compared, server-managed metadata and status
// are ignored. Any error aborts the whole execution, so every attempt is
// all-or-nothing and safe to replay.
package workflow
