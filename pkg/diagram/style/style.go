package style

import (
	"maps"
	"slices"
)

// Recognized attribute keys. Values under these keys carry the core visual
// vocabulary; anything else in an Attrs map is forwarded to the rendering
// backend untouched.
const (
	KeyColor     = "color"
	KeyStyle     = "style" // solid, dashed, dotted, bold
	KeyFillColor = "fillcolor"
	KeyFontSize  = "fontsize"
	KeyFontColor = "fontcolor"
	KeyPenWidth  = "penwidth"
)

// Line styles for the "style" key.
const (
	LineSolid  = "solid"
	LineDashed = "dashed"
	LineDotted = "dotted"
	LineBold   = "bold"
)

// Attrs is an open set of visual attributes for a node, cluster, edge, or
// the diagram itself. Keys outside the recognized set are passed through to
// the backend verbatim, so callers can use any attribute their layout
// engine understands without this package needing to know about it.
//
// A nil Attrs is valid and behaves like an empty map for reads.
type Attrs map[string]string

// Get returns the value for key, or "" if the key is absent.
func (a Attrs) Get(key string) string { return a[key] }

// Has reports whether key is present.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Clone returns an independent copy of the attribute set.
// Returns nil for a nil receiver.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// SortedKeys returns all keys in ascending order. Rendering iterates
// attributes through this to keep emitted output deterministic.
func (a Attrs) SortedKeys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Resolve merges attrs over defaults and returns the canonical attribute
// set for an element. Per-key override semantics: a key present in attrs
// wins, keys only in defaults are filled in, and unrecognized keys from
// either side are retained verbatim. Neither input is modified.
//
// Resolve never fails; a missing key is not an error because the backend
// applies its own defaults for anything left unset.
func Resolve(attrs, defaults Attrs) Attrs {
	if len(attrs) == 0 && len(defaults) == 0 {
		return Attrs{}
	}
	out := make(Attrs, len(attrs)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
