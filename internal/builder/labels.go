package builder

import (
	"maps"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lexfrei/gerrit-operator/internal/names"
)

const clusterKind = "GerritCluster"

// ClusterOf returns the name of the GerritCluster controlling obj, or the
// object's own name when it runs standalone.
func ClusterOf(obj metav1.Object) string {
	if ref := metav1.GetControllerOfNoCopy(obj); ref != nil && ref.Kind == clusterKind {
		return ref.Name
	}

	return obj.GetName()
}

// objectMeta returns the metadata shared by every object of a component.
func objectMeta(name, component string, owner metav1.Object) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: owner.GetNamespace(),
		Labels:    names.ComponentLabels(component, owner.GetName(), ClusterOf(owner)),
	}
}

// withLabels merges extra labels under the component labels.
func withLabels(extra, component map[string]string) map[string]string {
	labels := make(map[string]string, len(extra)+len(component))
	maps.Copy(labels, extra)
	maps.Copy(labels, component)

	return labels
}
