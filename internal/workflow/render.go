package workflow

import (
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"github.com/lexfrei/gerrit-operator/internal/names"
)

// serverManagedMetadata are metadata fields owned by the API server.
//
//nolint:gochecknoglobals // constant lookup table
var serverManagedMetadata = []string{
	"creationTimestamp",
	"deletionGracePeriodSeconds",
	"deletionTimestamp",
	"generation",
	"managedFields",
	"resourceVersion",
	"selfLink",
	"uid",
}

// ownerLabels identify the children of one node of one primary.
func ownerLabels(ownerKind, ownerName, nodeID string) map[string]string {
	return map[string]string{
		names.LabelManagedBy: names.ManagedByValue,
		names.LabelOwnerKind: ownerKind,
		names.LabelOwnerName: names.LabelValue(ownerName),
		names.LabelNode:      nodeID,
	}
}

// render stamps ownership on desired and converts it to its unstructured
// form with server-managed fields removed. desired is modified in place so
// dependents observe the stamped object.
func (x *execution[P]) render(nodeID string, desired client.Object) (*unstructured.Unstructured, schema.GroupVersionKind, error) {
	if desired.GetNamespace() == "" {
		desired.SetNamespace(x.primary.GetNamespace())
	}

	labels := desired.GetLabels()
	if labels == nil {
		labels = map[string]string{}
	}

	maps.Copy(labels, ownerLabels(x.primaryGVK.Kind, x.primary.GetName(), nodeID))
	desired.SetLabels(labels)

	err := controllerutil.SetControllerReference(x.primary, desired, x.scheme)
	if err != nil {
		return nil, schema.GroupVersionKind{}, errors.Wrapf(err, "failed to set owner on %s", desired.GetName())
	}

	gvk, err := apiutil.GVKForObject(desired, x.scheme)
	if err != nil {
		return nil, schema.GroupVersionKind{}, errors.Wrapf(err, "failed to resolve kind of %s", desired.GetName())
	}

	var rendered *unstructured.Unstructured

	if typed, ok := desired.(*unstructured.Unstructured); ok {
		rendered = typed.DeepCopy()
	} else {
		content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(desired)
		if err != nil {
			return nil, schema.GroupVersionKind{}, errors.Wrapf(err, "failed to convert %s", desired.GetName())
		}

		rendered = &unstructured.Unstructured{Object: content}
	}

	rendered.SetGroupVersionKind(gvk)
	delete(rendered.Object, "status")

	for _, field := range serverManagedMetadata {
		unstructured.RemoveNestedField(rendered.Object, "metadata", field)
	}

	err = recordLastApplied(rendered)
	if err != nil {
		return nil, schema.GroupVersionKind{}, err
	}

	return rendered, gvk, nil
}

// createdFields lists the fields reported for a newly created object.
func createdFields(obj *unstructured.Unstructured) []string {
	keys := dataKeys(obj)
	if len(keys) > 0 {
		return keys
	}

	sections := make([]string, 0, len(obj.Object))

	for section := range obj.Object {
		if !ignoredSections.Has(section) {
			sections = append(sections, section)
		}
	}

	slices.Sort(sections)

	return sections
}
