package workflow

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Cardinality tells whether a node manages one object or a keyed set.
type Cardinality int

const (
	// Single nodes manage exactly one object with a deterministic name.
	Single Cardinality = iota

	// Bulk nodes manage zero or more objects keyed by ResourceID.
	Bulk
)

func (c Cardinality) String() string {
	if c == Bulk {
		return "Bulk"
	}

	return "Single"
}

// Node is one producer of a workflow graph. P is the primary resource type.
type Node[P client.Object] struct {
	// ID is unique within a graph.
	ID string

	Cardinality Cardinality

	// DependsOn lists node ids evaluated before this node. Their outputs are
	// visible to IsActive and Produce.
	DependsOn []string

	// Type is an empty object of the produced kind. It is used to look up
	// existing objects when the node is inactive or when listing bulk
	// children. Typed objects and unstructured objects with a GVK both work.
	Type client.Object

	// Name returns the name of the object a Single node manages. Two Single
	// nodes of the same kind are kept apart by their names.
	Name func(primary P) string

	// IsActive reports whether the node should exist. Nil means always.
	IsActive func(primary P, deps Outputs) bool

	// Produce renders the desired object of a Single node.
	Produce func(ctx context.Context, primary P, deps Outputs) (client.Object, error)

	// ProduceBulk renders the desired objects of a Bulk node. The object
	// name is its ResourceID.
	ProduceBulk func(ctx context.Context, primary P, deps Outputs) ([]client.Object, error)
}

func (n *Node[P]) active(primary P, deps Outputs) bool {
	if n.IsActive == nil {
		return true
	}

	return n.IsActive(primary, deps)
}

// Output is what a node exposes to the nodes depending on it.
type Output struct {
	// Active is false when the node was skipped. Inactive dependencies are
	// vacuously satisfied.
	Active bool

	// Desired holds the rendered objects in ResourceID order. Single nodes
	// have at most one entry.
	Desired []client.Object

	// Outcomes are the results of applying Desired.
	Outcomes []Outcome
}

// Outputs maps node ids to their outputs.
type Outputs map[string]*Output

// Active reports whether the node with the given id was evaluated and active.
func (o Outputs) Active(id string) bool {
	out, ok := o[id]

	return ok && out.Active
}

// Desired returns the rendered objects of a node.
func (o Outputs) Desired(id string) []client.Object {
	out, ok := o[id]
	if !ok {
		return nil
	}

	return out.Desired
}

// DesiredOf returns the single rendered object of a node as T.
func DesiredOf[T client.Object](outputs Outputs, id string) (T, bool) {
	var zero T

	desired := outputs.Desired(id)
	if len(desired) == 0 {
		return zero, false
	}

	typed, ok := desired[0].(T)

	return typed, ok
}

// AllDesiredOf returns every rendered object of a node that is a T.
func AllDesiredOf[T client.Object](outputs Outputs, id string) []T {
	desired := outputs.Desired(id)
	result := make([]T, 0, len(desired))

	for _, obj := range desired {
		if typed, ok := obj.(T); ok {
			result = append(result, typed)
		}
	}

	return result
}
