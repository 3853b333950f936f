package workflow

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// OutcomeKind is what applying a node did to one object.
type OutcomeKind string

const (
	Created   OutcomeKind = "CREATED"
	Updated   OutcomeKind = "UPDATED"
	Unchanged OutcomeKind = "UNCHANGED"
	Deleted   OutcomeKind = "DELETED"
)

// Outcome records the effect of one node on one object.
type Outcome struct {
	NodeID string

	// ResourceID is set for bulk nodes.
	ResourceID string

	Kind OutcomeKind

	GVK       schema.GroupVersionKind
	Namespace string
	Name      string

	// ChangedFields lists the data keys of ConfigMaps and Secrets, or the
	// top-level sections of other kinds, that differed from the live object.
	// All data keys are listed for created objects.
	ChangedFields []string

	// ChangedData lists only the data keys of ConfigMaps and Secrets that
	// were created, changed or removed. It is empty for other kinds.
	ChangedData []string

	// Object is the live object after apply. It is nil for deleted objects.
	Object *unstructured.Unstructured
}

// Changed reports whether the object was created or updated.
func (o *Outcome) Changed() bool {
	return o.Kind == Created || o.Kind == Updated
}

// Result is the ordered record of one execution.
type Result struct {
	// Outcomes cover every active node in topological order. Orphans of
	// active bulk nodes appear here as Deleted too.
	Outcomes []Outcome

	// Deleted lists objects removed because their node became inactive or
	// because they were orphaned.
	Deleted []Outcome

	// Outputs are the node outputs of the execution.
	Outputs Outputs
}

// ForNode returns the outcomes of one node.
func (r *Result) ForNode(id string) []Outcome {
	var outcomes []Outcome

	for _, outcome := range r.Outcomes {
		if outcome.NodeID == id {
			outcomes = append(outcomes, outcome)
		}
	}

	return outcomes
}

// OfKind returns the outcomes whose object has the given kind.
func (r *Result) OfKind(kind string) []Outcome {
	var outcomes []Outcome

	for _, outcome := range r.Outcomes {
		if outcome.GVK.Kind == kind {
			outcomes = append(outcomes, outcome)
		}
	}

	return outcomes
}

// AllUnchanged reports whether nothing was created, updated or deleted.
func (r *Result) AllUnchanged() bool {
	if len(r.Deleted) > 0 {
		return false
	}

	for _, outcome := range r.Outcomes {
		if outcome.Kind != Unchanged {
			return false
		}
	}

	return true
}

// Ready reports whether every applied object exists and is ready.
func (r *Result) Ready() bool {
	for _, outcome := range r.Outcomes {
		if outcome.Kind == Deleted {
			continue
		}

		if outcome.Object == nil || !IsReady(outcome.Object) {
			return false
		}
	}

	return true
}

// NotReady returns the names of applied objects that are not ready, as
// "Kind/name".
func (r *Result) NotReady() []string {
	var pending []string

	for _, outcome := range r.Outcomes {
		if outcome.Kind == Deleted {
			continue
		}

		if outcome.Object == nil || !IsReady(outcome.Object) {
			pending = append(pending, outcome.GVK.Kind+"/"+outcome.Name)
		}
	}

	return pending
}
