package diagram

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID is returned by [Builder.AddNode] and [Builder.AddCluster]
	// when the element ID is empty. All elements must have non-empty identifiers.
	ErrInvalidID = errors.New("element ID must not be empty")

	// ErrDuplicateID is returned when an ID is already used by any node or
	// cluster in the diagram. Nodes and clusters share one namespace.
	ErrDuplicateID = errors.New("duplicate element ID")

	// ErrUnknownNode is returned by [Builder.AddEdge] when the source or a
	// target does not resolve to a node registered in the diagram.
	ErrUnknownNode = errors.New("unknown node")

	// ErrEmptyTargets is returned by [Builder.AddEdge] when the target list
	// is empty. Every edge must point at one or more nodes.
	ErrEmptyTargets = errors.New("edge must have at least one target")

	// ErrInvalidParent is returned by [Builder.AddCluster] and
	// [Builder.SetParent] when the parent cluster does not exist.
	ErrInvalidParent = errors.New("invalid parent cluster")

	// ErrClusterCycle is returned by [Builder.SetParent] when the new
	// parent assignment would make a cluster its own ancestor.
	ErrClusterCycle = errors.New("cluster containment cycle")

	// ErrFinalized is returned by builder mutations after [Builder.Finalize]
	// has succeeded. A diagram is built once and then immutable.
	ErrFinalized = errors.New("diagram already finalized")
)

// StructuralError aggregates every invariant violation found while
// building and finalizing a diagram. [Builder.Finalize] collects all
// violations instead of stopping at the first so a single pass surfaces
// every problem with the input.
type StructuralError struct {
	Violations []error
}

// Error lists all violations on one line.
func (e *StructuralError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("diagram has %d structural violation(s): %s",
		len(e.Violations), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *StructuralError) Unwrap() []error { return e.Violations }
