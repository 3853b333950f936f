package remediation

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// Restarter triggers rolling restarts of workloads by changing an
// annotation of their pod template.
type Restarter struct {
	client     client.Client
	fieldOwner string
	newID      func() string
}

// NewRestarter creates a Restarter writing with the given field owner.
func NewRestarter(c client.Client, fieldOwner string) *Restarter {
	return &Restarter{
		client:     c,
		fieldOwner: fieldOwner,
		newID:      uuid.NewString,
	}
}

// Restart requests a rolling restart of the workload of kind gvk at key.
// Workloads created during the same reconcile already run the current
// configuration and are left alone. It returns whether a restart was
// requested.
func (r *Restarter) Restart(
	ctx context.Context,
	gvk schema.GroupVersionKind,
	key client.ObjectKey,
	result *workflow.Result,
) (bool, error) {
	if result != nil && createdInPass(result, gvk, key) {
		log.FromContext(ctx).V(1).Info("Workload created in this pass, skipping restart",
			"kind", gvk.Kind, "name", key.Name)

		return false, nil
	}

	live := &unstructured.Unstructured{}
	live.SetGroupVersionKind(gvk)

	err := r.client.Get(ctx, key, live)
	if err != nil {
		return false, errors.Wrapf(err, "failed to get %s %s", gvk.Kind, key.Name)
	}

	patched := live.DeepCopy()

	err = unstructured.SetNestedField(patched.Object, r.newID(),
		"spec", "template", "metadata", "annotations", names.AnnotationRestartTrigger)
	if err != nil {
		return false, errors.Wrapf(err, "failed to set restart trigger on %s %s", gvk.Kind, key.Name)
	}

	err = r.client.Patch(ctx, patched, client.MergeFrom(live), client.FieldOwner(r.fieldOwner))
	if err != nil {
		return false, errors.Wrapf(err, "failed to restart %s %s", gvk.Kind, key.Name)
	}

	log.FromContext(ctx).Info("Requested rolling restart", "kind", gvk.Kind, "name", key.Name)

	return true, nil
}

func createdInPass(result *workflow.Result, gvk schema.GroupVersionKind, key client.ObjectKey) bool {
	for _, outcome := range result.Outcomes {
		if outcome.Kind == workflow.Created &&
			outcome.GVK == gvk &&
			outcome.Namespace == key.Namespace &&
			outcome.Name == key.Name {
			return true
		}
	}

	return false
}
