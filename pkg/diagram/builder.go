package diagram

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/archigram/archigram/pkg/diagram/style"
)

// Option configures a [Builder].
type Option func(*Builder)

// WithDirection sets the layout direction. Invalid values are ignored
// and the default (top to bottom) is kept.
func WithDirection(d Direction) Option {
	return func(b *Builder) {
		if d.Valid() {
			b.direction = d
		}
	}
}

// WithFileName sets the output filename stem. The default is a slug
// derived from the diagram title.
func WithFileName(stem string) Option {
	return func(b *Builder) { b.fileName = stem }
}

// WithFormat sets the output format. The default is PNG.
func WithFormat(f Format) Option {
	return func(b *Builder) {
		if f.Valid() {
			b.format = f
		}
	}
}

// WithAttrs sets graph-level attributes (fontsize, bgcolor, pad, splines,
// nodesep, ...). They are forwarded to the backend verbatim.
func WithAttrs(attrs style.Attrs) Option {
	return func(b *Builder) { b.attrs = attrs.Clone() }
}

// Builder assembles a diagram through a single build phase: add nodes,
// clusters, and edges, then call [Builder.Finalize] exactly once to
// obtain an immutable [Diagram].
//
// Each mutating call validates its inputs and returns a typed error on
// failure; the failed element is not added. Failures are also recorded so
// Finalize can report every violation from the whole build in one
// [StructuralError].
//
// Builder is not safe for concurrent use.
type Builder struct {
	title     string
	direction Direction
	fileName  string
	format    Format
	attrs     style.Attrs

	root       *Cluster
	nodes      map[string]*Node
	clusters   map[string]*Cluster
	nodeOrder  []*Node
	edges      []*Edge
	violations []error
	finalized  bool
}

// New creates a builder for a diagram with the given title.
func New(title string, opts ...Option) *Builder {
	root := &Cluster{ID: "", Label: title}
	b := &Builder{
		title:     title,
		direction: DirectionTB,
		fileName:  Slug(title),
		format:    FormatPNG,
		root:      root,
		nodes:     make(map[string]*Node),
		clusters:  make(map[string]*Cluster),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Root returns the root cluster, the implicit parent for top-level elements.
func (b *Builder) Root() *Cluster { return b.root }

// AddNode adds a node under parent (nil means the root cluster).
// The category selects the node's default styling; unknown categories
// fall back to generic. Returns [ErrDuplicateID] if the ID is already
// used by any node or cluster, [ErrInvalidID] for an empty ID, or
// [ErrInvalidParent] if parent is not a cluster of this builder.
func (b *Builder) AddNode(parent *Cluster, id, label, category string) (*Node, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	parent, err := b.resolveParent(parent)
	if err != nil {
		return nil, b.record(fmt.Errorf("node %q: %w", id, err))
	}
	if err := b.claimID(id); err != nil {
		return nil, b.record(fmt.Errorf("node %q: %w", id, err))
	}
	if category == "" {
		category = "generic"
	}
	n := &Node{ID: id, Label: label, Category: category}
	b.nodes[id] = n
	b.nodeOrder = append(b.nodeOrder, n)
	parent.children = append(parent.children, n)
	return n, nil
}

// AddCluster adds a cluster under parent (nil means the root cluster).
// Returns [ErrDuplicateID] on an ID collision with any node or cluster,
// [ErrInvalidID] for an empty ID, or [ErrInvalidParent] if parent is not
// a cluster of this builder.
func (b *Builder) AddCluster(parent *Cluster, id, label string, attrs style.Attrs) (*Cluster, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	parent, err := b.resolveParent(parent)
	if err != nil {
		return nil, b.record(fmt.Errorf("cluster %q: %w", id, err))
	}
	if err := b.claimID(id); err != nil {
		return nil, b.record(fmt.Errorf("cluster %q: %w", id, err))
	}
	c := &Cluster{ID: id, Label: label, Attrs: attrs.Clone(), parent: parent}
	b.clusters[id] = c
	parent.children = append(parent.children, c)
	return c, nil
}

// SetParent moves a cluster under a new parent (nil means the root).
// Returns [ErrInvalidParent] if either cluster is not part of this
// builder, or [ErrClusterCycle] if the assignment would make the cluster
// its own ancestor.
func (b *Builder) SetParent(c, parent *Cluster) error {
	if b.finalized {
		return ErrFinalized
	}
	if c == nil || c == b.root || b.clusters[c.ID] != c {
		return b.record(fmt.Errorf("reparent: %w", ErrInvalidParent))
	}
	parent, err := b.resolveParent(parent)
	if err != nil {
		return b.record(fmt.Errorf("cluster %q: %w", c.ID, err))
	}
	for a := parent; a != nil; a = a.parent {
		if a == c {
			return b.record(fmt.Errorf("cluster %q under %q: %w", c.ID, parent.ID, ErrClusterCycle))
		}
	}
	if old := c.parent; old != nil {
		old.children = removeElement(old.children, c)
	}
	c.parent = parent
	parent.children = append(parent.children, c)
	return nil
}

// SetParentID reparents the cluster childID under parentID, where an
// empty parentID means the root. Both IDs must name clusters of this
// builder; the same cycle check as [Builder.SetParent] applies.
func (b *Builder) SetParentID(childID, parentID string) error {
	if b.finalized {
		return ErrFinalized
	}
	c, ok := b.clusters[childID]
	if !ok {
		return b.record(fmt.Errorf("cluster %q: %w", childID, ErrInvalidParent))
	}
	if parentID == "" {
		return b.SetParent(c, nil)
	}
	p, ok := b.clusters[parentID]
	if !ok {
		return b.record(fmt.Errorf("cluster %q parent %q: %w", childID, parentID, ErrInvalidParent))
	}
	return b.SetParent(c, p)
}

// AddEdge adds a directed edge from source to one or more targets.
// All endpoints must reference nodes already present in the diagram;
// dangling references are a construction-time error, not a render-time
// one. Returns [ErrEmptyTargets] for an empty target list or
// [ErrUnknownNode] (naming the missing ID) for an unresolved endpoint.
func (b *Builder) AddEdge(source string, targets []string, label string, attrs style.Attrs) error {
	if b.finalized {
		return ErrFinalized
	}
	if len(targets) == 0 {
		return b.record(fmt.Errorf("edge from %q: %w", source, ErrEmptyTargets))
	}
	if _, ok := b.nodes[source]; !ok {
		return b.record(fmt.Errorf("edge source %q: %w", source, ErrUnknownNode))
	}
	for _, t := range targets {
		if _, ok := b.nodes[t]; !ok {
			return b.record(fmt.Errorf("edge target %q: %w", t, ErrUnknownNode))
		}
	}
	b.edges = append(b.edges, &Edge{
		Source:  source,
		Targets: append([]string(nil), targets...),
		Label:   label,
		Attrs:   attrs.Clone(),
	})
	return nil
}

// Finalize validates the whole structure and returns the immutable
// diagram. All violations, both those recorded during construction and
// any found by the final validation pass, are aggregated into a single
// *[StructuralError] so one pass surfaces every problem. On success the
// builder is sealed and further mutations return [ErrFinalized].
func (b *Builder) Finalize() (*Diagram, error) {
	violations := append([]error(nil), b.violations...)
	violations = append(violations, b.validateTree()...)
	violations = append(violations, b.validateEdges()...)
	if len(violations) > 0 {
		return nil, &StructuralError{Violations: violations}
	}

	b.finalized = true
	index := make(map[string]*Node, len(b.nodes))
	for id, n := range b.nodes {
		index[id] = n
	}
	return &Diagram{
		title:     b.title,
		direction: b.direction,
		fileName:  b.fileName,
		format:    b.format,
		attrs:     b.attrs.Clone(),
		root:      b.root,
		nodes:     b.nodeOrder,
		edges:     b.edges,
		index:     index,
	}, nil
}

// validateTree checks that cluster containment forms a tree: every
// cluster is reachable from the root exactly once and no cluster is its
// own ancestor.
func (b *Builder) validateTree() []error {
	var violations []error
	seen := map[*Cluster]bool{b.root: true}

	var walk func(c *Cluster)
	walk = func(c *Cluster) {
		for _, el := range c.children {
			sub, ok := el.(*Cluster)
			if !ok {
				continue
			}
			if seen[sub] {
				violations = append(violations, fmt.Errorf("cluster %q: %w", sub.ID, ErrClusterCycle))
				continue
			}
			seen[sub] = true
			walk(sub)
		}
	}
	walk(b.root)

	for id, c := range b.clusters {
		if !seen[c] {
			violations = append(violations, fmt.Errorf("cluster %q not reachable from root: %w", id, ErrClusterCycle))
		}
	}
	return violations
}

// validateEdges re-checks every stored edge against the node index.
// Edges are validated at AddEdge time, so this only finds corruption
// introduced by mutating returned structs directly.
func (b *Builder) validateEdges() []error {
	var violations []error
	for _, e := range b.edges {
		if len(e.Targets) == 0 {
			violations = append(violations, fmt.Errorf("edge from %q: %w", e.Source, ErrEmptyTargets))
		}
		if _, ok := b.nodes[e.Source]; !ok {
			violations = append(violations, fmt.Errorf("edge source %q: %w", e.Source, ErrUnknownNode))
		}
		for _, t := range e.Targets {
			if _, ok := b.nodes[t]; !ok {
				violations = append(violations, fmt.Errorf("edge target %q: %w", t, ErrUnknownNode))
			}
		}
	}
	return violations
}

// claimID reserves id in the shared node/cluster namespace.
func (b *Builder) claimID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if _, ok := b.nodes[id]; ok {
		return ErrDuplicateID
	}
	if _, ok := b.clusters[id]; ok {
		return ErrDuplicateID
	}
	return nil
}

// resolveParent maps nil to the root and rejects clusters that do not
// belong to this builder.
func (b *Builder) resolveParent(parent *Cluster) (*Cluster, error) {
	if parent == nil {
		return b.root, nil
	}
	if parent == b.root {
		return parent, nil
	}
	if b.clusters[parent.ID] != parent {
		return nil, ErrInvalidParent
	}
	return parent, nil
}

// record stores a violation for Finalize and returns it unchanged.
func (b *Builder) record(err error) error {
	b.violations = append(b.violations, err)
	return err
}

func removeElement(els []Element, target Element) []Element {
	out := els[:0]
	for _, el := range els {
		if el != target {
			out = append(out, el)
		}
	}
	return out
}

// Slug derives a filesystem-friendly filename stem from a diagram title:
// lowercase, runs of non-alphanumerics collapsed to single underscores.
func Slug(title string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}
