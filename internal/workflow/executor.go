package workflow

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Executor applies a Graph to primaries of type P.
type Executor[P client.Object] struct {
	client     client.Client
	scheme     *runtime.Scheme
	fieldOwner string
}

// NewExecutor creates an Executor writing with the given field owner.
func NewExecutor[P client.Object](c client.Client, scheme *runtime.Scheme, fieldOwner string) *Executor[P] {
	return &Executor[P]{
		client:     c,
		scheme:     scheme,
		fieldOwner: fieldOwner,
	}
}

// execution is the state of one Execute call.
type execution[P client.Object] struct {
	*Executor[P]

	primary    P
	primaryGVK schema.GroupVersionKind
	outputs    Outputs
	result     *Result
}

// Execute evaluates every node of graph against primary in topological
// order. The first error aborts the execution and no Result is returned.
func (e *Executor[P]) Execute(ctx context.Context, primary P, graph *Graph[P]) (*Result, error) {
	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	primaryGVK, err := apiutil.GVKForObject(primary, e.scheme)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve primary kind")
	}

	run := &execution[P]{
		Executor:   e,
		primary:    primary,
		primaryGVK: primaryGVK,
		outputs:    make(Outputs, len(order)),
		result:     &Result{},
	}

	for _, id := range order {
		node, _ := graph.Node(id)

		err = run.evaluate(ctx, node)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", id)
		}
	}

	run.result.Outputs = run.outputs

	return run.result, nil
}

func (x *execution[P]) evaluate(ctx context.Context, node *Node[P]) error {
	out := &Output{}
	x.outputs[node.ID] = out

	if !node.active(x.primary, x.outputs) {
		return x.deleteInactive(ctx, node)
	}

	out.Active = true

	if node.Cardinality == Bulk {
		return x.applyBulk(ctx, node, out)
	}

	return x.applySingle(ctx, node, out)
}

func (x *execution[P]) applySingle(ctx context.Context, node *Node[P], out *Output) error {
	desired, err := node.Produce(ctx, x.primary, x.outputs)
	if err != nil {
		return errors.Wrap(err, "failed to produce desired object")
	}

	name := node.Name(x.primary)

	switch desired.GetName() {
	case "":
		desired.SetName(name)
	case name:
	default:
		return errors.Wrapf(ErrInvalidNode, "produced %q, expected %q", desired.GetName(), name)
	}

	rendered, gvk, err := x.render(node.ID, desired)
	if err != nil {
		return err
	}

	outcome, err := x.applyObject(ctx, rendered, gvk)
	if err != nil {
		return err
	}

	outcome.NodeID = node.ID
	out.Desired = []client.Object{desired}
	out.Outcomes = []Outcome{outcome}
	x.result.Outcomes = append(x.result.Outcomes, outcome)

	return nil
}

//nolint:funlen // create, update and orphan deletion share the same key sets
func (x *execution[P]) applyBulk(ctx context.Context, node *Node[P], out *Output) error {
	produced, err := node.ProduceBulk(ctx, x.primary, x.outputs)
	if err != nil {
		return errors.Wrap(err, "failed to produce desired objects")
	}

	desiredByID := make(map[string]client.Object, len(produced))

	for _, obj := range produced {
		id := obj.GetName()
		if id == "" {
			return errors.Wrap(ErrInvalidNode, "produced object without name")
		}

		if _, duplicate := desiredByID[id]; duplicate {
			return errors.Wrapf(ErrDuplicateResourceID, "resource id %q produced more than once", id)
		}

		desiredByID[id] = obj
	}

	existing, err := x.listOwned(ctx, node)
	if err != nil {
		return err
	}

	existingByID := make(map[string]*unstructured.Unstructured, len(existing))
	for i := range existing {
		existingByID[existing[i].GetName()] = &existing[i]
	}

	desiredIDs := sets.KeySet(desiredByID)

	for _, id := range sets.List(desiredIDs) {
		desired := desiredByID[id]

		rendered, gvk, err := x.render(node.ID, desired)
		if err != nil {
			return err
		}

		outcome, err := x.applyObject(ctx, rendered, gvk)
		if err != nil {
			return errors.Wrapf(err, "resource %q", id)
		}

		outcome.NodeID = node.ID
		outcome.ResourceID = id
		out.Desired = append(out.Desired, desired)
		out.Outcomes = append(out.Outcomes, outcome)
		x.result.Outcomes = append(x.result.Outcomes, outcome)
	}

	for _, id := range sets.List(sets.KeySet(existingByID).Difference(desiredIDs)) {
		outcome, err := x.deleteObject(ctx, existingByID[id])
		if err != nil {
			return errors.Wrapf(err, "resource %q", id)
		}

		outcome.NodeID = node.ID
		outcome.ResourceID = id
		out.Outcomes = append(out.Outcomes, outcome)
		x.result.Outcomes = append(x.result.Outcomes, outcome)
		x.result.Deleted = append(x.result.Deleted, outcome)
	}

	return nil
}

func (x *execution[P]) applyObject(
	ctx context.Context,
	rendered *unstructured.Unstructured,
	gvk schema.GroupVersionKind,
) (Outcome, error) {
	logger := log.FromContext(ctx).WithValues("kind", gvk.Kind, "name", rendered.GetName())

	outcome := Outcome{
		GVK:       gvk,
		Namespace: rendered.GetNamespace(),
		Name:      rendered.GetName(),
	}

	live := &unstructured.Unstructured{}
	live.SetGroupVersionKind(gvk)

	err := x.client.Get(ctx, client.ObjectKeyFromObject(rendered), live)
	if apierrors.IsNotFound(err) {
		created := rendered.DeepCopy()

		err = x.client.Create(ctx, created, client.FieldOwner(x.fieldOwner))
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "failed to create %s %s", gvk.Kind, rendered.GetName())
		}

		logger.Info("Created object")

		outcome.Kind = Created
		outcome.ChangedFields = createdFields(rendered)
		outcome.ChangedData = dataKeys(rendered)
		outcome.Object = created

		return outcome, nil
	}

	if err != nil {
		return Outcome{}, errors.Wrapf(err, "failed to get %s %s", gvk.Kind, rendered.GetName())
	}

	if controller := metav1.GetControllerOf(live); controller != nil && !x.controls(controller) {
		return Outcome{}, errors.Wrapf(ErrOwnershipConflict, "%s %s is controlled by %s %s",
			gvk.Kind, live.GetName(), controller.Kind, controller.Name)
	}

	last := lastApplied(live)

	fields := sets.List(sets.New(changedFields(rendered, live)...).Insert(staleFields(last, rendered, live)...))
	if len(fields) == 0 {
		logger.V(1).Info("Object unchanged")

		outcome.Kind = Unchanged
		outcome.Object = live

		return outcome, nil
	}

	patched := live.DeepCopy()
	overlay(rendered, patched)
	pruneStale(last, rendered, patched)

	err = x.client.Patch(ctx, patched, client.MergeFrom(live), client.FieldOwner(x.fieldOwner))
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "failed to patch %s %s", gvk.Kind, rendered.GetName())
	}

	logger.Info("Updated object", "changedFields", fields)

	outcome.Kind = Updated
	outcome.ChangedFields = fields
	outcome.ChangedData = changedData(rendered, live)
	outcome.Object = patched

	return outcome, nil
}

func (x *execution[P]) deleteInactive(ctx context.Context, node *Node[P]) error {
	var candidates []unstructured.Unstructured

	if node.Cardinality == Bulk {
		owned, err := x.listOwned(ctx, node)
		if err != nil {
			return err
		}

		candidates = owned
	} else {
		gvk, err := apiutil.GVKForObject(node.Type, x.scheme)
		if err != nil {
			return errors.Wrap(err, "failed to resolve node kind")
		}

		live := unstructured.Unstructured{}
		live.SetGroupVersionKind(gvk)

		err = x.client.Get(ctx, client.ObjectKey{Namespace: x.primary.GetNamespace(), Name: node.Name(x.primary)}, &live)
		if apierrors.IsNotFound(err) || isNoKindMatch(err) {
			return nil
		}

		if err != nil {
			return errors.Wrapf(err, "failed to get %s %s", gvk.Kind, node.Name(x.primary))
		}

		if controller := metav1.GetControllerOf(&live); controller == nil || !x.controls(controller) {
			return nil
		}

		candidates = []unstructured.Unstructured{live}
	}

	for i := range candidates {
		outcome, err := x.deleteObject(ctx, &candidates[i])
		if err != nil {
			return err
		}

		outcome.NodeID = node.ID
		if node.Cardinality == Bulk {
			outcome.ResourceID = candidates[i].GetName()
		}

		x.result.Deleted = append(x.result.Deleted, outcome)
	}

	return nil
}

func (x *execution[P]) deleteObject(ctx context.Context, obj *unstructured.Unstructured) (Outcome, error) {
	gvk := obj.GroupVersionKind()

	err := x.client.Delete(ctx, obj, client.PropagationPolicy(metav1.DeletePropagationBackground))
	if err != nil && !apierrors.IsNotFound(err) {
		return Outcome{}, errors.Wrapf(err, "failed to delete %s %s", gvk.Kind, obj.GetName())
	}

	log.FromContext(ctx).Info("Deleted object", "kind", gvk.Kind, "name", obj.GetName())

	return Outcome{
		Kind:      Deleted,
		GVK:       gvk,
		Namespace: obj.GetNamespace(),
		Name:      obj.GetName(),
	}, nil
}

// listOwned lists the children a node created for the current primary.
func (x *execution[P]) listOwned(ctx context.Context, node *Node[P]) ([]unstructured.Unstructured, error) {
	gvk, err := apiutil.GVKForObject(node.Type, x.scheme)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve node kind")
	}

	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(gvk.GroupVersion().WithKind(gvk.Kind + "List"))

	err = x.client.List(ctx, list,
		client.InNamespace(x.primary.GetNamespace()),
		client.MatchingLabels(ownerLabels(x.primaryGVK.Kind, x.primary.GetName(), node.ID)),
	)
	if isNoKindMatch(err) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", gvk.Kind)
	}

	owned := slices.DeleteFunc(list.Items, func(item unstructured.Unstructured) bool {
		controller := metav1.GetControllerOf(&item)

		return controller == nil || !x.controls(controller)
	})

	for i := range owned {
		owned[i].SetGroupVersionKind(gvk)
	}

	return owned, nil
}

// controls reports whether ref points at the current primary.
func (x *execution[P]) controls(ref *metav1.OwnerReference) bool {
	refGV, err := schema.ParseGroupVersion(ref.APIVersion)
	if err != nil {
		return false
	}

	return refGV.Group == x.primaryGVK.Group &&
		ref.Kind == x.primaryGVK.Kind &&
		ref.Name == x.primary.GetName() &&
		ref.UID == x.primary.GetUID()
}

// isNoKindMatch reports whether the kind is not served by the cluster, as
// for optional CRDs that were never installed.
func isNoKindMatch(err error) bool {
	return err != nil && meta.IsNoMatchError(err)
}
