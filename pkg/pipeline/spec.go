package pipeline

import (
	"github.com/archigram/archigram/pkg/diagram"
	"github.com/archigram/archigram/pkg/diagram/style"
)

// Spec is the declarative description of one diagram: title, layout
// direction, output settings, and the nested cluster/node/edge
// structure. Specs are decoded from TOML manifests (pkg/manifest) or
// JSON requests (internal/web) and handed to [Runner.Build] as an
// opaque, already-shaped structure. Semantic validation happens in the
// diagram builder, not here.
type Spec struct {
	Title     string            `toml:"title" json:"title"`
	Direction string            `toml:"direction,omitempty" json:"direction,omitempty"`
	FileName  string            `toml:"filename,omitempty" json:"filename,omitempty"`
	Format    string            `toml:"format,omitempty" json:"format,omitempty"`
	OutputDir string            `toml:"output_dir,omitempty" json:"output_dir,omitempty"`
	Attrs     map[string]string `toml:"graph_attrs,omitempty" json:"graph_attrs,omitempty"`

	Nodes    []NodeSpec    `toml:"nodes,omitempty" json:"nodes,omitempty"`
	Clusters []ClusterSpec `toml:"clusters,omitempty" json:"clusters,omitempty"`
	Edges    []EdgeSpec    `toml:"edges,omitempty" json:"edges,omitempty"`
}

// NodeSpec declares one node.
type NodeSpec struct {
	ID       string `toml:"id" json:"id"`
	Label    string `toml:"label,omitempty" json:"label,omitempty"`
	Category string `toml:"category,omitempty" json:"category,omitempty"`
}

// ClusterSpec declares one cluster, with members either nested inline or
// attached later through the Parent field of another cluster. Parent
// names a cluster ID and overrides the structural nesting, which lets
// flat manifests express arbitrary trees (and lets a malformed manifest
// express a containment cycle, which finalization rejects).
type ClusterSpec struct {
	ID     string            `toml:"id" json:"id"`
	Label  string            `toml:"label,omitempty" json:"label,omitempty"`
	Parent string            `toml:"parent,omitempty" json:"parent,omitempty"`
	Attrs  map[string]string `toml:"attrs,omitempty" json:"attrs,omitempty"`

	Nodes    []NodeSpec    `toml:"nodes,omitempty" json:"nodes,omitempty"`
	Clusters []ClusterSpec `toml:"clusters,omitempty" json:"clusters,omitempty"`
}

// EdgeSpec declares a directed edge from one source to one or more
// targets, in order.
type EdgeSpec struct {
	From  string            `toml:"from" json:"from"`
	To    []string          `toml:"to" json:"to"`
	Label string            `toml:"label,omitempty" json:"label,omitempty"`
	Attrs map[string]string `toml:"attrs,omitempty" json:"attrs,omitempty"`
}

// Assemble constructs and finalizes the diagram described by spec.
// All structural violations in the input (duplicate IDs, unknown edge
// endpoints, containment cycles, empty target lists) are aggregated
// into the returned error (a *[diagram.StructuralError]).
func Assemble(spec Spec) (*diagram.Diagram, error) {
	opts := []diagram.Option{
		diagram.WithDirection(diagram.Direction(spec.Direction)),
		diagram.WithAttrs(style.Attrs(spec.Attrs)),
	}
	if spec.FileName != "" {
		opts = append(opts, diagram.WithFileName(spec.FileName))
	}
	if spec.Format != "" {
		opts = append(opts, diagram.WithFormat(diagram.Format(spec.Format)))
	}
	b := diagram.New(spec.Title, opts...)

	clusters := make(map[string]*diagram.Cluster)
	addClusters(b, nil, spec.Clusters, clusters)

	// Parent references override structural nesting after the whole tree
	// exists, so a reference can point at a cluster declared later.
	reparent(b, spec.Clusters)

	for _, n := range spec.Nodes {
		b.AddNode(nil, n.ID, nodeLabel(n), n.Category) //nolint:errcheck // violations surface in Finalize
	}
	addClusterNodes(b, spec.Clusters, clusters)

	for _, e := range spec.Edges {
		b.AddEdge(e.From, e.To, e.Label, style.Attrs(e.Attrs)) //nolint:errcheck // violations surface in Finalize
	}

	return b.Finalize()
}

func addClusters(b *diagram.Builder, parent *diagram.Cluster, specs []ClusterSpec, out map[string]*diagram.Cluster) {
	for _, cs := range specs {
		c, err := b.AddCluster(parent, cs.ID, cs.Label, style.Attrs(cs.Attrs))
		if err != nil {
			continue // recorded by the builder, surfaces in Finalize
		}
		out[cs.ID] = c
		addClusters(b, c, cs.Clusters, out)
	}
}

func reparent(b *diagram.Builder, specs []ClusterSpec) {
	for _, cs := range specs {
		if cs.Parent != "" {
			b.SetParentID(cs.ID, cs.Parent) //nolint:errcheck // violations surface in Finalize
		}
		reparent(b, cs.Clusters)
	}
}

func addClusterNodes(b *diagram.Builder, specs []ClusterSpec, clusters map[string]*diagram.Cluster) {
	for _, cs := range specs {
		parent := clusters[cs.ID]
		for _, n := range cs.Nodes {
			b.AddNode(parent, n.ID, nodeLabel(n), n.Category) //nolint:errcheck // violations surface in Finalize
		}
		addClusterNodes(b, cs.Clusters, clusters)
	}
}

// nodeLabel falls back to the node ID when no label is given.
func nodeLabel(n NodeSpec) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}
