package render

import (
	"fmt"
	"strings"

	"github.com/archigram/archigram/pkg/diagram"
	"github.com/archigram/archigram/pkg/diagram/style"
)

// Default attribute sets applied beneath element styling. Diagram and
// element attributes override these per key via [style.Resolve].
var (
	graphDefaults = style.Attrs{
		"bgcolor":  "white",
		"fontsize": "15",
		"pad":      "0.5",
		"nodesep":  "0.60",
		"ranksep":  "0.75",
	}
	clusterDefaults = style.Attrs{
		"style":     "rounded",
		"labeljust": "l",
		"fontsize":  "12",
		"color":     "#AEB6BE",
	}
)

// ToDOT converts a finalized diagram to Graphviz DOT. Output is
// deterministic: elements and edges appear in insertion order and
// attributes are emitted in sorted key order, so the same diagram always
// produces byte-identical DOT. This makes the textual description usable
// as a snapshot fixture even when raster output differs across engine
// versions.
func ToDOT(d *diagram.Diagram) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "digraph %q {\n", d.Title())

	graphAttrs := style.Resolve(d.Attrs(), graphDefaults)
	graphAttrs["label"] = d.Title()
	graphAttrs["rankdir"] = string(d.Direction())
	for _, k := range graphAttrs.SortedKeys() {
		fmt.Fprintf(&buf, "  %s=%q;\n", k, graphAttrs[k])
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", margin=\"0.25,0.15\"];\n")
	buf.WriteString("\n")

	writeElements(&buf, d.Root(), 1)

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		writeEdge(&buf, e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeElements emits the members of a cluster in insertion order,
// recursing into sub-clusters as DOT cluster subgraphs.
func writeElements(buf *strings.Builder, c *diagram.Cluster, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, el := range c.Children() {
		switch el := el.(type) {
		case *diagram.Node:
			attrs := style.Resolve(el.Attrs, style.Palette(el.Category))
			fmt.Fprintf(buf, "%s%q [label=%q%s];\n", pad, el.ID, el.Label, fmtAttrs(attrs))
		case *diagram.Cluster:
			// The cluster_ prefix is what makes Graphviz draw the subgraph
			// as a bounded box.
			fmt.Fprintf(buf, "%ssubgraph %q {\n", pad, "cluster_"+el.ID)
			attrs := style.Resolve(el.Attrs, clusterDefaults)
			attrs["label"] = el.Label
			for _, k := range attrs.SortedKeys() {
				fmt.Fprintf(buf, "%s  %s=%q;\n", pad, k, attrs[k])
			}
			writeElements(buf, el, depth+1)
			fmt.Fprintf(buf, "%s}\n", pad)
		}
	}
}

// writeEdge emits one DOT edge statement per target, preserving target
// order. Fan-out edges share their label and styling across all targets.
func writeEdge(buf *strings.Builder, e *diagram.Edge) {
	attrs := style.Resolve(e.Attrs, nil)
	if e.Label != "" {
		attrs["label"] = e.Label
	}
	for _, t := range e.Targets {
		fmt.Fprintf(buf, "  %q -> %q%s;\n", e.Source, t, fmtAttrsBracket(attrs))
	}
}

// fmtAttrs formats attributes as ", k=v" pairs appended inside an
// existing bracket list.
func fmtAttrs(attrs style.Attrs) string {
	var sb strings.Builder
	for _, k := range attrs.SortedKeys() {
		fmt.Fprintf(&sb, ", %s=%q", k, attrs[k])
	}
	return sb.String()
}

// fmtAttrsBracket formats attributes as a full " [k=v, ...]" list, or
// returns "" when there are none.
func fmtAttrsBracket(attrs style.Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, k := range attrs.SortedKeys() {
		parts = append(parts, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
