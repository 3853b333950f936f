package workflow

import (
	"slices"

	"github.com/cockroachdb/errors"
	"ocm.software/open-component-model/bindings/go/dag"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Graph is a DAG of nodes. Edges point from a node to its dependencies.
type Graph[P client.Object] struct {
	dag   *dag.DirectedAcyclicGraph[string]
	nodes map[string]*Node[P]

	// pending holds dependencies on ids not registered yet, keyed by the
	// missing id.
	pending map[string][]string
}

// NewGraph returns an empty graph.
func NewGraph[P client.Object]() *Graph[P] {
	return &Graph[P]{
		dag:     dag.NewDirectedAcyclicGraph[string](),
		nodes:   make(map[string]*Node[P]),
		pending: make(map[string][]string),
	}
}

// Register adds a node. It fails when the id is taken, the node is
// incomplete, or its dependencies would close a cycle. A failed Register
// leaves the graph unchanged.
func (g *Graph[P]) Register(node *Node[P]) error {
	err := validateNode(node)
	if err != nil {
		return err
	}

	if _, exists := g.nodes[node.ID]; exists {
		return errors.Wrapf(ErrDuplicateNode, "node %q", node.ID)
	}

	next := g.dag.Clone()

	err = next.AddVertex(node.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to add node %q", node.ID)
	}

	var deferred []string

	for _, dep := range node.DependsOn {
		if dep == node.ID {
			return errors.Wrapf(ErrGraphCycle, "node %q depends on itself", node.ID)
		}

		if _, known := g.nodes[dep]; !known {
			deferred = append(deferred, dep)

			continue
		}

		err = next.AddEdge(node.ID, dep)
		if err != nil {
			return errors.Wrapf(errors.Mark(err, ErrGraphCycle), "node %q", node.ID)
		}
	}

	for _, dependent := range g.pending[node.ID] {
		err = next.AddEdge(dependent, node.ID)
		if err != nil {
			return errors.Wrapf(errors.Mark(err, ErrGraphCycle), "node %q", node.ID)
		}
	}

	g.dag = next
	g.nodes[node.ID] = node
	delete(g.pending, node.ID)

	for _, dep := range deferred {
		g.pending[dep] = append(g.pending[dep], node.ID)
	}

	return nil
}

// Node returns the registered node with the given id.
func (g *Graph[P]) Node(id string) (*Node[P], bool) {
	node, ok := g.nodes[id]

	return node, ok
}

// Len returns the number of registered nodes.
func (g *Graph[P]) Len() int {
	return len(g.nodes)
}

// TopologicalOrder returns node ids with every dependency before its
// dependents. The order is deterministic: ties are broken by node id.
func (g *Graph[P]) TopologicalOrder() ([]string, error) {
	if len(g.pending) > 0 {
		missing := make([]string, 0, len(g.pending))
		for id := range g.pending {
			missing = append(missing, id)
		}

		slices.Sort(missing)

		return nil, errors.Wrapf(ErrUnknownDependency, "unregistered ids %v", missing)
	}

	order, err := g.dag.TopologicalSort()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to sort workflow graph"), ErrGraphCycle)
	}

	return order, nil
}

func validateNode[P client.Object](node *Node[P]) error {
	if node == nil || node.ID == "" {
		return errors.Wrap(ErrInvalidNode, "node id is required")
	}

	if node.Type == nil {
		return errors.Wrapf(ErrInvalidNode, "node %q has no type", node.ID)
	}

	switch node.Cardinality {
	case Single:
		if node.Produce == nil || node.Name == nil {
			return errors.Wrapf(ErrInvalidNode, "single node %q needs Produce and Name", node.ID)
		}
	case Bulk:
		if node.ProduceBulk == nil {
			return errors.Wrapf(ErrInvalidNode, "bulk node %q needs ProduceBulk", node.ID)
		}
	default:
		return errors.Wrapf(ErrInvalidNode, "node %q has unknown cardinality %d", node.ID, node.Cardinality)
	}

	return nil
}
