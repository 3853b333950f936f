package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// GitGarbageCollectionSpec defines the desired state of GitGarbageCollection.
type GitGarbageCollectionSpec struct {
	// Cluster is the name of the GerritCluster in the same namespace whose
	// repositories are collected.
	// +kubebuilder:validation:MinLength=1
	Cluster string `json:"cluster"`

	// Schedule in cron format.
	// +kubebuilder:validation:MinLength=1
	Schedule string `json:"schedule"`

	// Projects to collect. An empty list collects every project not claimed
	// by another GitGarbageCollection of the same cluster.
	// +optional
	Projects []string `json:"projects,omitempty"`

	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`
}

// GitGarbageCollectionStatus defines the observed state of GitGarbageCollection.
type GitGarbageCollectionStatus struct {
	ReconcileStatus `json:",inline"`

	// ExcludedProjects are skipped because another GitGarbageCollection
	// claims them.
	// +optional
	ExcludedProjects []string `json:"excludedProjects,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=gitgc
// +kubebuilder:printcolumn:name="Cluster",type=string,JSONPath=`.spec.cluster`
// +kubebuilder:printcolumn:name="Schedule",type=string,JSONPath=`.spec.schedule`
// +kubebuilder:printcolumn:name="Ready",type=boolean,JSONPath=`.status.ready`

// GitGarbageCollection is the Schema for the gitgarbagecollections API.
type GitGarbageCollection struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GitGarbageCollectionSpec   `json:"spec,omitempty"`
	Status GitGarbageCollectionStatus `json:"status,omitempty"`
}

// GetReconcileStatus returns the mutable status of the GitGarbageCollection.
func (g *GitGarbageCollection) GetReconcileStatus() *ReconcileStatus {
	return &g.Status.ReconcileStatus
}

// IsCollectingAll reports whether the job collects every unclaimed project.
func (g *GitGarbageCollection) IsCollectingAll() bool {
	return len(g.Spec.Projects) == 0
}

// +kubebuilder:object:root=true

// GitGarbageCollectionList contains a list of GitGarbageCollection.
type GitGarbageCollectionList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GitGarbageCollection `json:"items"`
}

func init() {
	SchemeBuilder.Register(&GitGarbageCollection{}, &GitGarbageCollectionList{})
}
