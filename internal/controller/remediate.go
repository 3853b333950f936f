package controller

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/lexfrei/gerrit-operator/internal/remediation"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// remediator performs the action planned for one apply result.
type remediator struct {
	controller string
	planner    *remediation.Planner
	restarter  *remediation.Restarter
	reloader   *remediation.Reloader
	deps       *Dependencies
}

// target is the workload a remediation acts on.
type target struct {
	owner    client.Object
	workload schema.GroupVersionKind
	key      client.ObjectKey

	// reloadURL is the base URL of the plugin reload endpoint. Empty when
	// the workload serves no plugins.
	reloadURL string
}

func newRemediator(controller string, deps *Dependencies, planner *remediation.Planner) *remediator {
	return &remediator{
		controller: controller,
		planner:    planner,
		restarter:  remediation.NewRestarter(deps.Client, deps.Config.GetFieldOwner()),
		reloader:   remediation.NewReloader(deps.Config.GetReloadTimeout(), deps.ReloadTransport, deps.Metrics),
		deps:       deps,
	}
}

// apply plans and performs the remediation. Failures are logged only.
func (r *remediator) apply(
	ctx context.Context,
	tgt *target,
	result *workflow.Result,
	applied, live map[string]string,
) {
	logger := log.FromContext(ctx)

	action := r.planner.Plan(remediation.Input{
		Result:                result,
		AppliedSecretVersions: applied,
		LiveSecretVersions:    live,
	})

	r.deps.Metrics.RecordRemediation(ctx, r.controller, string(action.Kind))

	switch action.Kind {
	case remediation.ActionRollingRestart:
		restarted, err := r.restarter.Restart(ctx, tgt.workload, tgt.key, result)
		if err != nil {
			logger.Error(err, "Rolling restart failed", "reason", action.Reason)

			return
		}

		if restarted {
			r.deps.Recorder.Event(tgt.owner, corev1.EventTypeNormal, string(action.Kind), action.Reason)
		}
	case remediation.ActionReloadKeys:
		if tgt.reloadURL == "" {
			logger.V(1).Info("No reload endpoint, skipping reload", "keys", action.Keys)

			return
		}

		err := r.reloader.Reload(ctx, tgt.reloadURL, action.Keys)
		if err != nil {
			// Configuration is on disk already; the next restart picks it up.
			logger.Error(err, "Plugin reload failed", "keys", action.Keys)

			return
		}

		r.deps.Recorder.Event(tgt.owner, corev1.EventTypeNormal, string(action.Kind), action.Reason)
	case remediation.ActionNone:
	}
}
