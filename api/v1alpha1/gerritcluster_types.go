package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// GerritClusterSpec defines the desired state of GerritCluster.
type GerritClusterSpec struct {
	ClusterSharedSpec `json:",inline"`

	// Gerrits declares the Gerrit instances of the cluster. Template names
	// must be unique.
	// +optional
	Gerrits []GerritTemplate `json:"gerrits,omitempty"`

	// Receiver declares an optional receiver.
	// +optional
	Receiver *ReceiverTemplate `json:"receiver,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=gclus
// +kubebuilder:printcolumn:name="Ready",type=boolean,JSONPath=`.status.ready`
// +kubebuilder:printcolumn:name="Host",type=string,JSONPath=`.spec.ingress.host`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// GerritCluster is the Schema for the gerritclusters API.
type GerritCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GerritClusterSpec `json:"spec,omitempty"`
	Status ReconcileStatus   `json:"status,omitempty"`
}

// GetReconcileStatus returns the mutable status of the GerritCluster.
func (c *GerritCluster) GetReconcileStatus() *ReconcileStatus {
	return &c.Status
}

// +kubebuilder:object:root=true

// GerritClusterList contains a list of GerritCluster.
type GerritClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GerritCluster `json:"items"`
}

func init() {
	SchemeBuilder.Register(&GerritCluster{}, &GerritClusterList{})
}
