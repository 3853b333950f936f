package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/metrics"
	"github.com/lexfrei/gerrit-operator/internal/status"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

const (
	// conflictRequeueDelay is the delay before retrying a reconcile whose
	// status write lost an optimistic concurrency race.
	conflictRequeueDelay = time.Second

	// notReadyRequeueDelay is the delay before checking readiness again.
	notReadyRequeueDelay = 30 * time.Second

	resultSuccess  = "success"
	resultError    = "error"
	resultConflict = "conflict"
)

// Dependencies are the collaborators shared by every reconciler.
type Dependencies struct {
	Client   client.Client
	Scheme   *runtime.Scheme
	Config   *config.OperatorConfig
	Metrics  metrics.Collector
	Recorder record.EventRecorder

	// ReloadTransport carries plugin reload calls to Gerrit. Nil uses
	// http.DefaultTransport.
	ReloadTransport http.RoundTripper
}

// steps are the kind-specific parts of a reconcile.
type steps[P status.Primary] struct {
	// secrets returns the names of the Secrets the primary references.
	secrets func(primary P) []string

	// remediate acts on the apply result. Failures are logged, not returned.
	remediate func(ctx context.Context, primary P, result *workflow.Result, live map[string]string)

	// members computes the member map of the primary. Nil leaves it unset.
	members func(primary P, result *workflow.Result) map[string][]string
}

// pipeline runs the reconcile sequence shared by all primary kinds: resolve
// referenced Secrets, execute the workflow graph, remediate, commit status.
type pipeline[P status.Primary] struct {
	name     string
	client   client.Client
	resolver *config.Resolver
	graph    *workflow.Graph[P]
	executor *workflow.Executor[P]
	status   *status.Reconciler
	metrics  metrics.Collector
	recorder record.EventRecorder
	steps    steps[P]
}

func newPipeline[P status.Primary](
	name string,
	deps *Dependencies,
	graph *workflow.Graph[P],
	kindSteps steps[P],
) (*pipeline[P], error) {
	// Order validation fails fast on unknown dependencies.
	_, err := graph.TopologicalOrder()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s workflow", name)
	}

	return &pipeline[P]{
		name:     name,
		client:   deps.Client,
		resolver: config.NewResolver(deps.Client),
		graph:    graph,
		executor: workflow.NewExecutor[P](deps.Client, deps.Scheme, deps.Config.GetFieldOwner()),
		status:   status.NewReconciler(deps.Client, deps.Metrics, name),
		metrics:  deps.Metrics,
		recorder: deps.Recorder,
		steps:    kindSteps,
	}, nil
}

// run reconciles the primary loaded into primary from req.
func (p *pipeline[P]) run(ctx context.Context, req ctrl.Request, primary P) (ctrl.Result, error) {
	start := time.Now()

	err := p.client.Get(ctx, req.NamespacedName, primary)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}

		return ctrl.Result{}, errors.Wrapf(err, "failed to get %s", req.NamespacedName)
	}

	if !primary.GetDeletionTimestamp().IsZero() {
		return ctrl.Result{}, nil
	}

	result, label, err := p.reconcile(ctx, primary)
	if err != nil {
		p.metrics.RecordReconcileDuration(ctx, p.name, resultError, time.Since(start))

		return ctrl.Result{}, p.fail(ctx, primary, err)
	}

	p.metrics.RecordReconcileDuration(ctx, p.name, label, time.Since(start))

	return result, nil
}

func (p *pipeline[P]) reconcile(ctx context.Context, primary P) (ctrl.Result, string, error) {
	logger := log.FromContext(ctx)

	var names []string
	if p.steps.secrets != nil {
		names = p.steps.secrets(primary)
	}

	live, err := p.resolver.SecretVersions(ctx, primary.GetNamespace(), names...)
	if err != nil {
		return ctrl.Result{}, "", err
	}

	result, err := p.executor.Execute(ctx, primary, p.graph)
	if err != nil {
		return ctrl.Result{}, "", errors.Wrap(err, "failed to execute workflow")
	}

	for _, outcome := range result.Outcomes {
		p.metrics.RecordOutcome(ctx, p.name, outcome.NodeID, string(outcome.Kind))
	}

	if p.steps.remediate != nil {
		p.steps.remediate(ctx, primary, result, live)
	}

	update := status.Update{Result: result, SecretVersions: live}
	if p.steps.members != nil {
		update.Members = p.steps.members(primary, result)
	}

	conflict, err := p.status.Commit(ctx, primary, update)
	if err != nil {
		return ctrl.Result{}, "", err
	}

	if conflict {
		logger.V(1).Info("Primary changed during reconcile, requeueing")

		return ctrl.Result{RequeueAfter: conflictRequeueDelay}, resultConflict, nil
	}

	if pending := result.NotReady(); len(pending) > 0 {
		logger.V(1).Info("Waiting for objects to become ready", "pending", pending)

		return ctrl.Result{RequeueAfter: notReadyRequeueDelay}, resultSuccess, nil
	}

	logger.V(1).Info("Reconciled")

	return ctrl.Result{}, resultSuccess, nil
}

// fail records a failed reconcile on the primary and returns err for the
// scheduler to back off.
func (p *pipeline[P]) fail(ctx context.Context, primary P, err error) error {
	reason := conditionReason(err)

	p.metrics.RecordReconcileError(ctx, p.name, metrics.ClassifyError(err))
	log.FromContext(ctx).Error(err, "Reconcile failed", "reason", reason)

	if reason == v1alpha1.ReasonDuplicateResourceID || reason == v1alpha1.ReasonOwnershipConflict {
		p.recorder.Event(primary, corev1.EventTypeWarning, reason, err.Error())
	}

	_, statusErr := p.status.Fail(ctx, primary, reason, err)
	if statusErr != nil {
		log.FromContext(ctx).Error(statusErr, "Failed to record failure in status")
	}

	return err
}

// conditionReason maps a reconcile error to the reason of the Ready condition.
func conditionReason(err error) string {
	switch {
	case errors.Is(err, config.ErrReferenceNotFound):
		return v1alpha1.ReasonReferenceNotFound
	case errors.Is(err, workflow.ErrDuplicateResourceID):
		return v1alpha1.ReasonDuplicateResourceID
	case errors.Is(err, workflow.ErrOwnershipConflict):
		return v1alpha1.ReasonOwnershipConflict
	default:
		return v1alpha1.ReasonReconcileFailed
	}
}
