package diagram

import (
	"slices"

	"github.com/archigram/archigram/pkg/diagram/style"
)

// Direction controls the primary layout axis of the rendered diagram.
type Direction string

// Supported layout directions, matching Graphviz rankdir values.
const (
	DirectionTB Direction = "TB" // top to bottom (default)
	DirectionLR Direction = "LR" // left to right
	DirectionBT Direction = "BT" // bottom to top
	DirectionRL Direction = "RL" // right to left
)

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionTB, DirectionLR, DirectionBT, DirectionRL:
		return true
	}
	return false
}

// Format selects the output artifact type produced by rendering.
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatDOT Format = "dot"
)

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatPNG, FormatSVG, FormatDOT:
		return true
	}
	return false
}

// Node is a leaf element of the diagram: a single box with a label and a
// coarse category tag that selects its default styling. Nodes are
// immutable once added to a builder.
type Node struct {
	ID       string
	Label    string
	Category string
	Attrs    style.Attrs
}

// Element is a member of a cluster body: either a *Node or a *Cluster.
// Insertion order of elements within a cluster is preserved and is
// significant for deterministic rendering.
type Element interface {
	elementID() string
}

func (n *Node) elementID() string    { return n.ID }
func (c *Cluster) elementID() string { return c.ID }

// Cluster is a named grouping in the containment tree. It is purely
// organizational: clusters affect visual grouping but carry no edges of
// their own. Clusters form a tree rooted at the diagram; a cluster never
// contains itself or an ancestor.
type Cluster struct {
	ID    string
	Label string
	Attrs style.Attrs

	parent   *Cluster
	children []Element
}

// Children returns the cluster's members in insertion order.
// The returned slice is a copy; the members themselves are shared.
func (c *Cluster) Children() []Element { return slices.Clone(c.children) }

// Parent returns the enclosing cluster, or nil for the root.
func (c *Cluster) Parent() *Cluster { return c.parent }

// IsRoot reports whether this is the diagram's root cluster.
func (c *Cluster) IsRoot() bool { return c.parent == nil }

// Edge is a directed connection from one source node to one or more
// target nodes. Targets keep their declaration order; an edge with
// multiple targets fans out from the source to each target with the same
// label and styling.
type Edge struct {
	Source  string
	Targets []string
	Label   string
	Attrs   style.Attrs
}

// Diagram is the finalized, immutable graph of clusters, nodes, and
// edges ready for rendering. Obtain one from [Builder.Finalize]; it is
// consumed once by the render step and then discarded.
type Diagram struct {
	title     string
	direction Direction
	fileName  string
	format    Format
	attrs     style.Attrs

	root  *Cluster
	nodes []*Node
	edges []*Edge
	index map[string]*Node
}

// Title returns the diagram title, rendered as the graph label.
func (d *Diagram) Title() string { return d.title }

// Direction returns the layout direction.
func (d *Diagram) Direction() Direction { return d.direction }

// FileName returns the output filename stem (no extension).
func (d *Diagram) FileName() string { return d.fileName }

// Format returns the output format.
func (d *Diagram) Format() Format { return d.format }

// OutputFile returns the artifact filename, stem plus format extension.
func (d *Diagram) OutputFile() string { return d.fileName + "." + string(d.format) }

// Attrs returns a copy of the graph-level attributes.
func (d *Diagram) Attrs() style.Attrs { return d.attrs.Clone() }

// Root returns the root cluster of the containment tree.
func (d *Diagram) Root() *Cluster { return d.root }

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []*Node { return slices.Clone(d.nodes) }

// Edges returns all edges in insertion order.
func (d *Diagram) Edges() []*Edge { return slices.Clone(d.edges) }

// Node returns the node with the given ID, or nil, false if absent.
func (d *Diagram) Node(id string) (*Node, bool) {
	n, ok := d.index[id]
	return n, ok
}

// NodeCount returns the number of nodes in the diagram.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the diagram.
// A fan-out edge counts once regardless of its number of targets.
func (d *Diagram) EdgeCount() int { return len(d.edges) }
