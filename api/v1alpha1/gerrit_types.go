package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// DefaultHTTPPort is the port Gerrit's HTTP daemon listens on.
	DefaultHTTPPort = 8080

	// DefaultSSHPort is the conventional Gerrit SSH port.
	DefaultSSHPort = 29418
)

// GerritMode selects whether a Gerrit instance accepts writes.
// +kubebuilder:validation:Enum=PRIMARY;REPLICA
type GerritMode string

const (
	GerritModePrimary GerritMode = "PRIMARY"
	GerritModeReplica GerritMode = "REPLICA"
)

// GerritServiceConfig configures the Service in front of a Gerrit instance.
type GerritServiceConfig struct {
	// +optional
	// +kubebuilder:default=NodePort
	Type corev1.ServiceType `json:"type,omitempty"`

	// +optional
	// +kubebuilder:default=80
	HTTPPort int32 `json:"httpPort,omitempty"`

	// SSHPort exposes SSH when set. Zero disables SSH.
	// +optional
	SSHPort int32 `json:"sshPort,omitempty"`
}

// GerritSite configures the per-instance site volume.
type GerritSite struct {
	// +optional
	Size resource.Quantity `json:"size,omitempty"`
}

// GerritPlugin declares a plugin or library to install into the site.
type GerritPlugin struct {
	Name string `json:"name"`

	// URL to download the plugin from. Packaged plugins leave this empty.
	// +optional
	URL string `json:"url,omitempty"`

	// +optional
	Sha1 string `json:"sha1,omitempty"`

	// +optional
	InstallAsLibrary bool `json:"installAsLibrary,omitempty"`
}

// GerritDebugConfig enables remote debugging of the JVM.
type GerritDebugConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`

	// +optional
	Suspend bool `json:"suspend,omitempty"`
}

// GerritTemplateSpec is the part of a Gerrit spec users declare inside a
// GerritCluster. It is also the base of a standalone Gerrit.
type GerritTemplateSpec struct {
	// +optional
	// +kubebuilder:default=PRIMARY
	Mode GerritMode `json:"mode,omitempty"`

	// +optional
	// +kubebuilder:default=1
	Replicas int32 `json:"replicas,omitempty"`

	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// +optional
	Service GerritServiceConfig `json:"service,omitempty"`

	// +optional
	Site GerritSite `json:"site,omitempty"`

	// +optional
	Plugins []GerritPlugin `json:"plugins,omitempty"`

	// +optional
	Libs []GerritPlugin `json:"libs,omitempty"`

	// ConfigFiles maps file names (gerrit.config, <plugin>.config, ...) to
	// their content. The operator completes gerrit.config with the settings
	// it owns.
	// +optional
	ConfigFiles map[string]string `json:"configFiles,omitempty"`

	// SecretRef names a Secret with secure.config and other secret files.
	// +optional
	SecretRef string `json:"secretRef,omitempty"`

	// +optional
	Debug GerritDebugConfig `json:"debug,omitempty"`
}

// GetMode returns the configured mode, defaulting to PRIMARY.
func (s *GerritTemplateSpec) GetMode() GerritMode {
	if s.Mode == "" {
		return GerritModePrimary
	}

	return s.Mode
}

// GetReplicas returns the replica count, defaulting to 1.
func (s *GerritTemplateSpec) GetReplicas() int32 {
	if s.Replicas == 0 {
		return 1
	}

	return s.Replicas
}

// GetHTTPPort returns the Service HTTP port, defaulting to 80.
func (s *GerritTemplateSpec) GetHTTPPort() int32 {
	if s.Service.HTTPPort == 0 {
		return 80
	}

	return s.Service.HTTPPort
}

// GetServiceType returns the Service type, defaulting to NodePort.
func (s *GerritTemplateSpec) GetServiceType() corev1.ServiceType {
	if s.Service.Type == "" {
		return corev1.ServiceTypeNodePort
	}

	return s.Service.Type
}

// GetSiteSize returns the site volume size, defaulting to 1Gi.
func (s *GerritTemplateSpec) GetSiteSize() resource.Quantity {
	if s.Site.Size.IsZero() {
		return resource.MustParse("1Gi")
	}

	return s.Site.Size
}

// GerritTemplate declares one Gerrit instance of a GerritCluster.
type GerritTemplate struct {
	// Metadata of the created Gerrit. Name is required and identifies the
	// instance within the cluster.
	metav1.ObjectMeta `json:"metadata"`

	Spec GerritTemplateSpec `json:"spec"`
}

// GerritSpec defines the desired state of Gerrit.
type GerritSpec struct {
	GerritTemplateSpec `json:",inline"`
	ClusterSharedSpec  `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Mode",type=string,JSONPath=`.spec.mode`
// +kubebuilder:printcolumn:name="Ready",type=boolean,JSONPath=`.status.ready`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// Gerrit is the Schema for the gerrits API.
type Gerrit struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GerritSpec      `json:"spec,omitempty"`
	Status ReconcileStatus `json:"status,omitempty"`
}

// GetReconcileStatus returns the mutable status of the Gerrit.
func (g *Gerrit) GetReconcileStatus() *ReconcileStatus {
	return &g.Status
}

// +kubebuilder:object:root=true

// GerritList contains a list of Gerrit.
type GerritList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Gerrit `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Gerrit{}, &GerritList{})
}
