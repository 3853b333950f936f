// Package status persists the observed state of primary resources.
//
// Status writes are guarded by the resourceVersion the primary was read
// with. A conflicting write is never retried or merged here; the attempt
// ends and the next reconcile recomputes the status from scratch.
package status

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/metrics"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// maxConditionMessage bounds condition messages.
const maxConditionMessage = 1024

// Primary is a primary resource reporting a ReconcileStatus.
type Primary interface {
	client.Object
	GetReconcileStatus() *v1alpha1.ReconcileStatus
}

// Update is the status computed by one successful reconcile.
type Update struct {
	Result *workflow.Result

	// SecretVersions become the new applied baseline.
	SecretVersions map[string]string

	// Members replaces the member map when not nil.
	Members map[string][]string
}

// Reconciler writes primary status.
type Reconciler struct {
	client     client.Client
	metrics    metrics.Collector
	controller string
}

// NewReconciler creates a Reconciler for one controller.
func NewReconciler(c client.Client, collector metrics.Collector, controller string) *Reconciler {
	return &Reconciler{
		client:     c,
		metrics:    collector,
		controller: controller,
	}
}

// Commit records the outcome of a successful reconcile on primary. Ready
// is true when every applied object is ready. The applied secret versions
// are replaced unconditionally. It returns conflict=true when primary
// changed since it was read; the write is dropped in that case.
func (r *Reconciler) Commit(ctx context.Context, primary Primary, update Update) (conflict bool, err error) {
	status := primary.GetReconcileStatus()

	pending := update.Result.NotReady()
	status.Ready = len(pending) == 0
	status.AppliedSecretVersions = update.SecretVersions
	status.ObservedGeneration = primary.GetGeneration()

	if update.Members != nil {
		status.Members = update.Members
	}

	condition := metav1.Condition{
		Type:               v1alpha1.ConditionReady,
		Status:             metav1.ConditionTrue,
		Reason:             v1alpha1.ReasonReconciled,
		Message:            "All managed objects are ready",
		ObservedGeneration: primary.GetGeneration(),
	}

	if !status.Ready {
		condition.Status = metav1.ConditionFalse
		condition.Reason = v1alpha1.ReasonProgressing
		condition.Message = truncate("Waiting for " + strings.Join(pending, ", "))
	}

	meta.SetStatusCondition(&status.Conditions, condition)

	return r.write(ctx, primary)
}

// Fail records a failed reconcile as a Ready=False condition with reason.
// Readiness and the applied secret baseline are left untouched.
func (r *Reconciler) Fail(ctx context.Context, primary Primary, reason string, cause error) (conflict bool, err error) {
	status := primary.GetReconcileStatus()
	status.Ready = false

	meta.SetStatusCondition(&status.Conditions, metav1.Condition{
		Type:               v1alpha1.ConditionReady,
		Status:             metav1.ConditionFalse,
		Reason:             reason,
		Message:            truncate(cause.Error()),
		ObservedGeneration: primary.GetGeneration(),
	})

	return r.write(ctx, primary)
}

func (r *Reconciler) write(ctx context.Context, primary Primary) (bool, error) {
	err := r.client.Status().Update(ctx, primary)
	if apierrors.IsConflict(err) {
		r.metrics.RecordStatusConflict(ctx, r.controller)
		log.FromContext(ctx).V(1).Info("Status write conflicted, dropping",
			"resourceVersion", primary.GetResourceVersion())

		return true, nil
	}

	if err != nil {
		return false, errors.Wrapf(err, "failed to update status of %s", primary.GetName())
	}

	return false, nil
}

func truncate(message string) string {
	if len(message) <= maxConditionMessage {
		return message
	}

	return message[:maxConditionMessage-3] + "..."
}
