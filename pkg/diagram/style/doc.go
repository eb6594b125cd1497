// Package style normalizes per-element visual attributes into the
// canonical form consumed by rendering.
//
// Attributes are an open mapping: a small set of recognized keys (color,
// style, fillcolor, fontsize, ...) plus opaque pass-through for anything
// the rendering backend understands but this package does not. Unknown
// keys are never rejected, which keeps the core model forward compatible
// with backend-specific attributes.
//
// # Usage
//
//	attrs := style.Resolve(
//	    style.Attrs{"style": style.LineDashed},
//	    style.Palette("storage"),
//	)
//
// Resolution happens once per node, cluster, and edge immediately before
// handoff to the backend; resolved attribute sets are never re-resolved.
package style
