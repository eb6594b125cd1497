// Package diagram provides the in-memory model for hierarchical
// architecture diagrams: nodes, nested clusters, and styled directional
// edges.
//
// A diagram is assembled in a single build phase through a [Builder] and
// sealed by [Builder.Finalize], which validates the structural
// invariants and returns an immutable [Diagram]:
//
//   - element IDs are unique across the whole diagram, nodes and
//     clusters sharing one namespace
//   - cluster containment is a tree: one parent per element, no cycles
//   - every edge endpoint resolves to a registered node
//   - insertion order of cluster children and edge targets is preserved
//
// Violations are aggregated: Finalize reports every problem found in the
// build, not just the first, as a single [StructuralError].
//
// # Example
//
//	b := diagram.New("Service Overview", diagram.WithDirection(diagram.DirectionLR))
//	aws, _ := b.AddCluster(nil, "aws", "AWS Cloud", nil)
//	api, _ := b.AddNode(aws, "api", "API Gateway", "network")
//	db, _ := b.AddNode(aws, "db", "Orders DB", "storage")
//	_ = b.AddEdge(api.ID, []string{db.ID}, "reads", nil)
//	d, err := b.Finalize()
//
// The finalized diagram is handed to a rendering backend exactly once;
// there is no update-in-place or long-lived mutable diagram state.
package diagram
