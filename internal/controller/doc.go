// Package controller implements the reconcilers of the Gerrit operator.
//
// One reconciler exists per primary kind:
//
//   - GerritClusterReconciler: shared storage, snapshots, child Gerrits, the
//     Receiver and the network entrypoint of the configured strategy.
//   - GerritReconciler: configuration, Services and the StatefulSet of one
//     Gerrit. Configuration changes trigger a rolling restart or a plugin
//     reload.
//   - ReceiverReconciler: the Deployment and Service of a Receiver.
//   - GitGarbageCollectionReconciler: the git gc CronJob of a cluster.
//
// # Architecture
//
// Every reconciler builds a workflow graph once at setup and runs the same
// pipeline on each request:
//
//	primary ──> resolve Secrets ──> execute graph ──> remediate ──> commit status
//
// The graph is evaluated in dependency order against live cluster state.
// Outcomes of the apply drive remediation and readiness.
//
// # Concurrency
//
// The controller-runtime work queue never runs two reconciles of the same
// primary at once. Different primaries are reconciled by up to
// MaxConcurrentReconciles workers per controller.
//
// # Leader Election
//
// When running multiple replicas for high availability, enable leader election
// via --leader-elect flag to ensure only one controller actively reconciles
// resources at a time.
package controller
