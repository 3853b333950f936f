package workflow

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const gerritGroup = "gerrit.k8s.lex.la"

// IsReady reports whether a live object meets the health criteria of its
// kind. Kinds without a notion of health are ready once they exist.
func IsReady(obj *unstructured.Unstructured) bool {
	gvk := obj.GroupVersionKind()

	switch {
	case gvk.Group == "apps" && gvk.Kind == "StatefulSet":
		return replicasReady(obj, "readyReplicas")
	case gvk.Group == "apps" && gvk.Kind == "Deployment":
		return replicasReady(obj, "availableReplicas")
	case gvk.Group == "" && gvk.Kind == "PersistentVolumeClaim":
		phase, _, _ := unstructured.NestedString(obj.Object, "status", "phase")

		return phase != "Lost"
	case gvk.Group == "snapshot.storage.k8s.io" && gvk.Kind == "VolumeSnapshot":
		ready, _, _ := unstructured.NestedBool(obj.Object, "status", "readyToUse")

		return ready
	case gvk.Group == "batch" && gvk.Kind == "Job":
		failed, _, _ := unstructured.NestedInt64(obj.Object, "status", "failed")

		return failed == 0
	case gvk.Group == gerritGroup:
		ready, _, _ := unstructured.NestedBool(obj.Object, "status", "ready")

		return ready
	default:
		return true
	}
}

func replicasReady(obj *unstructured.Unstructured, field string) bool {
	desired, found, _ := unstructured.NestedInt64(obj.Object, "spec", "replicas")
	if !found {
		desired = 1
	}

	ready, _, _ := unstructured.NestedInt64(obj.Object, "status", field)

	return ready >= desired
}
