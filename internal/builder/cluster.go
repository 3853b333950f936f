package builder

import (
	snapshotv1 "github.com/kubernetes-csi/external-snapshotter/client/v6/apis/volumesnapshot/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/network"
)

// pluginCacheSize is the size of the plugin cache claim.
const pluginCacheSize = "1Gi"

// SharedStoragePVC builds the ReadWriteMany claim shared by every component
// of a cluster.
func SharedStoragePVC(cluster *v1alpha1.GerritCluster) *corev1.PersistentVolumeClaim {
	shared := cluster.Spec.Storage.SharedStorage

	return &corev1.PersistentVolumeClaim{
		ObjectMeta: objectMeta(names.SharedStorage(cluster.Name), names.ComponentStorage, cluster),
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes:      []corev1.PersistentVolumeAccessMode{corev1.ReadWriteMany},
			StorageClassName: ptr.To(cluster.Spec.Storage.GetReadWriteManyClass()),
			VolumeName:       shared.VolumeName,
			Selector:         shared.Selector.DeepCopy(),
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: shared.Size},
			},
		},
	}
}

// PluginCachePVC builds the claim caching downloaded plugins.
func PluginCachePVC(cluster *v1alpha1.GerritCluster) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		ObjectMeta: objectMeta(names.PluginCache(cluster.Name), names.ComponentStorage, cluster),
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes:      []corev1.PersistentVolumeAccessMode{corev1.ReadWriteMany},
			StorageClassName: ptr.To(cluster.Spec.Storage.GetReadWriteManyClass()),
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: resource.MustParse(pluginCacheSize)},
			},
		},
	}
}

// SharedStorageSnapshots builds one VolumeSnapshot of the shared claim per
// declared snapshot.
func SharedStorageSnapshots(cluster *v1alpha1.GerritCluster) []client.Object {
	shared := cluster.Spec.Storage.SharedStorage
	snapshots := make([]client.Object, 0, len(shared.Snapshots))

	for _, snapshot := range shared.Snapshots {
		spec := snapshotv1.VolumeSnapshotSpec{
			Source: snapshotv1.VolumeSnapshotSource{
				PersistentVolumeClaimName: ptr.To(names.SharedStorage(cluster.Name)),
			},
		}

		if shared.SnapshotClassName != "" {
			spec.VolumeSnapshotClassName = ptr.To(shared.SnapshotClassName)
		}

		snapshots = append(snapshots, &snapshotv1.VolumeSnapshot{
			ObjectMeta: objectMeta(snapshot.Name, names.ComponentStorage, cluster),
			Spec:       spec,
		})
	}

	return snapshots
}

// Gerrits builds the Gerrit of every template of a cluster. The cluster's
// shared settings are merged into each spec.
func Gerrits(cluster *v1alpha1.GerritCluster) []client.Object {
	gerrits := make([]client.Object, 0, len(cluster.Spec.Gerrits))

	for i := range cluster.Spec.Gerrits {
		template := &cluster.Spec.Gerrits[i]

		gerrits = append(gerrits, &v1alpha1.Gerrit{
			ObjectMeta: childMeta(&template.ObjectMeta, names.ComponentGerrit, cluster),
			Spec: v1alpha1.GerritSpec{
				GerritTemplateSpec: *template.Spec.DeepCopy(),
				ClusterSharedSpec:  *cluster.Spec.ClusterSharedSpec.DeepCopy(),
			},
		})
	}

	return gerrits
}

// Receiver builds the Receiver of a cluster, or nil when none is declared.
func Receiver(cluster *v1alpha1.GerritCluster) *v1alpha1.Receiver {
	template := cluster.Spec.Receiver
	if template == nil {
		return nil
	}

	name := template.Name
	if name == "" {
		name = cluster.Name + "-receiver"
	}

	meta := template.ObjectMeta.DeepCopy()
	meta.Name = name

	return &v1alpha1.Receiver{
		ObjectMeta: childMeta(meta, names.ComponentReceiver, cluster),
		Spec: v1alpha1.ReceiverSpec{
			ReceiverTemplateSpec: *template.Spec.DeepCopy(),
			ClusterSharedSpec:    *cluster.Spec.ClusterSharedSpec.DeepCopy(),
		},
	}
}

// ReceiverName returns the name of the Receiver a cluster declares. Once
// the declaration is removed, the last reported receiver member is used so
// the Receiver can still be found and deleted.
func ReceiverName(cluster *v1alpha1.GerritCluster) string {
	if receiver := Receiver(cluster); receiver != nil {
		return receiver.Name
	}

	if reported := cluster.Status.Members[string(network.RoleReceiver)]; len(reported) > 0 {
		return reported[0]
	}

	return cluster.Name + "-receiver"
}

func childMeta(template *metav1.ObjectMeta, component string, cluster *v1alpha1.GerritCluster) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:        template.Name,
		Namespace:   cluster.Namespace,
		Labels:      withLabels(template.Labels, names.ComponentLabels(component, template.Name, cluster.Name)),
		Annotations: template.Annotations,
	}
}
