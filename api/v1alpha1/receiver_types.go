package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ReceiverServiceConfig configures the Service in front of the receiver.
type ReceiverServiceConfig struct {
	// +optional
	// +kubebuilder:default=NodePort
	Type corev1.ServiceType `json:"type,omitempty"`

	// +optional
	// +kubebuilder:default=80
	HTTPPort int32 `json:"httpPort,omitempty"`
}

// ReceiverTemplateSpec is the part of a Receiver spec declared inside a GerritCluster.
type ReceiverTemplateSpec struct {
	// +optional
	// +kubebuilder:default=1
	Replicas int32 `json:"replicas,omitempty"`

	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// +optional
	Service ReceiverServiceConfig `json:"service,omitempty"`

	// CredentialSecretRef names the Secret holding the .htpasswd used to
	// authenticate pushes.
	CredentialSecretRef string `json:"credentialSecretRef"`
}

// GetReplicas returns the replica count, defaulting to 1.
func (s *ReceiverTemplateSpec) GetReplicas() int32 {
	if s.Replicas == 0 {
		return 1
	}

	return s.Replicas
}

// GetHTTPPort returns the Service HTTP port, defaulting to 80.
func (s *ReceiverTemplateSpec) GetHTTPPort() int32 {
	if s.Service.HTTPPort == 0 {
		return 80
	}

	return s.Service.HTTPPort
}

// GetServiceType returns the Service type, defaulting to NodePort.
func (s *ReceiverTemplateSpec) GetServiceType() corev1.ServiceType {
	if s.Service.Type == "" {
		return corev1.ServiceTypeNodePort
	}

	return s.Service.Type
}

// ReceiverTemplate declares the receiver of a GerritCluster.
type ReceiverTemplate struct {
	metav1.ObjectMeta `json:"metadata"`

	Spec ReceiverTemplateSpec `json:"spec"`
}

// ReceiverSpec defines the desired state of Receiver.
type ReceiverSpec struct {
	ReceiverTemplateSpec `json:",inline"`
	ClusterSharedSpec    `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Ready",type=boolean,JSONPath=`.status.ready`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// Receiver is the Schema for the receivers API. A receiver accepts pushes
// of repositories into the shared storage of a cluster.
type Receiver struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ReceiverSpec    `json:"spec,omitempty"`
	Status ReconcileStatus `json:"status,omitempty"`
}

// GetReconcileStatus returns the mutable status of the Receiver.
func (r *Receiver) GetReconcileStatus() *ReconcileStatus {
	return &r.Status
}

// +kubebuilder:object:root=true

// ReceiverList contains a list of Receiver.
type ReceiverList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Receiver `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Receiver{}, &ReceiverList{})
}
