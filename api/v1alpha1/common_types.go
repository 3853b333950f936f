package v1alpha1

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	defaultRegistry = "docker.io"
	defaultOrg      = "k8sgerrit"
	defaultTag      = "latest"
)

// Condition types and reasons shared by all primary resources.
const (
	ConditionReady = "Ready"

	ReasonReconciled          = "Reconciled"
	ReasonProgressing         = "Progressing"
	ReasonReferenceNotFound   = "ReferenceNotFound"
	ReasonDuplicateResourceID = "DuplicateResourceID"
	ReasonOwnershipConflict   = "OwnershipConflict"
	ReasonReconcileFailed     = "ReconcileFailed"
)

// GerritRepositoryConfig points at the registry hosting the k8s-gerrit images.
type GerritRepositoryConfig struct {
	// Registry hosting the images. Defaults to "docker.io".
	// +optional
	Registry string `json:"registry,omitempty"`

	// Org is the organization or project within the registry.
	// Defaults to "k8sgerrit".
	// +optional
	Org string `json:"org,omitempty"`

	// Tag used for all images. Defaults to "latest".
	// +optional
	Tag string `json:"tag,omitempty"`
}

// ContainerImages configures where container images are pulled from.
type ContainerImages struct {
	// +optional
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`

	// +optional
	ImagePullSecrets []corev1.LocalObjectReference `json:"imagePullSecrets,omitempty"`

	// +optional
	GerritImages GerritRepositoryConfig `json:"gerritImages,omitempty"`
}

// Image returns the fully qualified reference of the named image.
func (c *ContainerImages) Image(name string) string {
	registry := c.GerritImages.Registry
	if registry == "" {
		registry = defaultRegistry
	}

	org := c.GerritImages.Org
	if org == "" {
		org = defaultOrg
	}

	tag := c.GerritImages.Tag
	if tag == "" {
		tag = defaultTag
	}

	return strings.Join([]string{registry, org, name}, "/") + ":" + tag
}

// GetImagePullPolicy returns the pull policy, defaulting to IfNotPresent.
func (c *ContainerImages) GetImagePullPolicy() corev1.PullPolicy {
	if c.ImagePullPolicy == "" {
		return corev1.PullIfNotPresent
	}

	return c.ImagePullPolicy
}

// StorageClassConfig names the storage classes used for the different access modes.
type StorageClassConfig struct {
	// +optional
	// +kubebuilder:default="default"
	ReadWriteOnce string `json:"readWriteOnce,omitempty"`

	// +optional
	// +kubebuilder:default="shared-storage"
	ReadWriteMany string `json:"readWriteMany,omitempty"`
}

// SnapshotTemplate declares a VolumeSnapshot of the shared storage volume.
type SnapshotTemplate struct {
	// Name of the VolumeSnapshot. Must be unique within the cluster.
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`
}

// SharedStorage configures the ReadWriteMany volume shared by all Gerrit instances.
type SharedStorage struct {
	// Size of the volume.
	Size resource.Quantity `json:"size"`

	// VolumeName binds the claim to a pre-provisioned PersistentVolume.
	// +optional
	VolumeName string `json:"volumeName,omitempty"`

	// Selector restricts the PersistentVolumes the claim can bind to.
	// +optional
	Selector *metav1.LabelSelector `json:"selector,omitempty"`

	// SnapshotClassName is the VolumeSnapshotClass used for Snapshots.
	// +optional
	SnapshotClassName string `json:"snapshotClassName,omitempty"`

	// Snapshots lists VolumeSnapshots of the shared volume that should exist.
	// +optional
	// +listType=map
	// +listMapKey=name
	Snapshots []SnapshotTemplate `json:"snapshots,omitempty"`
}

// PluginCacheConfig configures the volume caching downloaded plugins.
type PluginCacheConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`
}

// StorageConfig configures all storage owned by a GerritCluster.
type StorageConfig struct {
	// +optional
	StorageClasses StorageClassConfig `json:"storageClasses,omitempty"`

	SharedStorage SharedStorage `json:"sharedStorage"`

	// +optional
	PluginCache PluginCacheConfig `json:"pluginCache,omitempty"`
}

// GetReadWriteOnceClass returns the RWO storage class, defaulting to "default".
func (s *StorageConfig) GetReadWriteOnceClass() string {
	if s.StorageClasses.ReadWriteOnce == "" {
		return "default"
	}

	return s.StorageClasses.ReadWriteOnce
}

// GetReadWriteManyClass returns the RWX storage class, defaulting to "shared-storage".
func (s *StorageConfig) GetReadWriteManyClass() string {
	if s.StorageClasses.ReadWriteMany == "" {
		return "shared-storage"
	}

	return s.StorageClasses.ReadWriteMany
}

// RefDatabase selects the global ref-database implementation.
// +kubebuilder:validation:Enum=NONE;ZOOKEEPER;SPANNER
type RefDatabase string

const (
	RefDatabaseNone      RefDatabase = "NONE"
	RefDatabaseZookeeper RefDatabase = "ZOOKEEPER"
	RefDatabaseSpanner   RefDatabase = "SPANNER"
)

// ZookeeperRefDBConfig configures the zookeeper global ref-database.
type ZookeeperRefDBConfig struct {
	ConnectString string `json:"connectString"`

	// +optional
	RootNode string `json:"rootNode,omitempty"`
}

// SpannerRefDBConfig configures the spanner global ref-database.
type SpannerRefDBConfig struct {
	ProjectName string `json:"projectName"`
	Instance    string `json:"instance"`
	Database    string `json:"database"`
}

// RefDBConfig configures the global ref-database used in HA and multisite setups.
type RefDBConfig struct {
	// +optional
	// +kubebuilder:default=NONE
	Database RefDatabase `json:"database,omitempty"`

	// +optional
	Zookeeper *ZookeeperRefDBConfig `json:"zookeeper,omitempty"`

	// +optional
	Spanner *SpannerRefDBConfig `json:"spanner,omitempty"`
}

// GetDatabase returns the configured ref-database, defaulting to NONE.
func (r *RefDBConfig) GetDatabase() RefDatabase {
	if r.Database == "" {
		return RefDatabaseNone
	}

	return r.Database
}

// TLSConfig configures TLS termination at the cluster entrypoint.
type TLSConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`

	// Secret containing the TLS certificate and key.
	// +optional
	Secret string `json:"secret,omitempty"`
}

// SSHIngressConfig configures SSH routing at the cluster entrypoint.
type SSHIngressConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`
}

// IngressConfig configures how the cluster is exposed outside of Kubernetes.
type IngressConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`

	// Host is the hostname under which Gerrit is reachable.
	// +optional
	Host string `json:"host,omitempty"`

	// Annotations added to the entrypoint objects.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`

	// +optional
	TLS TLSConfig `json:"tls,omitempty"`

	// +optional
	SSH SSHIngressConfig `json:"ssh,omitempty"`
}

// URL returns the externally visible base URL, or an empty string when the
// cluster is not exposed.
func (i *IngressConfig) URL() string {
	if !i.Enabled || i.Host == "" {
		return ""
	}

	if i.TLS.Enabled {
		return "https://" + i.Host
	}

	return "http://" + i.Host
}

// ClusterSharedSpec holds the settings a GerritCluster hands down to every
// component it creates. Standalone components declare them directly.
type ClusterSharedSpec struct {
	// ServerID is shared by all Gerrit instances of a cluster.
	// +optional
	ServerID string `json:"serverId,omitempty"`

	// +optional
	ContainerImages ContainerImages `json:"containerImages,omitempty"`

	// +optional
	Storage StorageConfig `json:"storage,omitempty"`

	// +optional
	Ingress IngressConfig `json:"ingress,omitempty"`

	// +optional
	RefDB RefDBConfig `json:"refdb,omitempty"`
}

// ReconcileStatus is the status every primary resource reports.
type ReconcileStatus struct {
	// Ready is true when every managed object exists and is healthy.
	// +optional
	Ready bool `json:"ready"`

	// AppliedSecretVersions maps referenced Secret names to the resourceVersion
	// that was live during the last successful reconciliation.
	// +optional
	AppliedSecretVersions map[string]string `json:"appliedSecretVersions,omitempty"`

	// Members maps a role (primary, replica, receiver) to the names of the
	// components serving it.
	// +optional
	Members map[string][]string `json:"members,omitempty"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}
