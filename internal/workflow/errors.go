package workflow

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateNode is returned when a node id is registered twice.
	ErrDuplicateNode = errors.New("duplicate workflow node")

	// ErrGraphCycle is returned when a dependency would close a cycle.
	ErrGraphCycle = errors.New("workflow graph cycle")

	// ErrUnknownDependency is returned when a node depends on an id that was
	// never registered.
	ErrUnknownDependency = errors.New("unknown workflow dependency")

	// ErrInvalidNode is returned for nodes missing required fields.
	ErrInvalidNode = errors.New("invalid workflow node")

	// ErrDuplicateResourceID is returned when two desired objects of a bulk
	// node share the same resource id. It is an input error that persists
	// until the primary's spec is corrected.
	ErrDuplicateResourceID = errors.New("duplicate resource id")

	// ErrOwnershipConflict is returned when the object a node resolves to is
	// controlled by a different primary.
	ErrOwnershipConflict = errors.New("object is controlled by another owner")
)
