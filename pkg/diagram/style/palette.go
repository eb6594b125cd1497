package style

import "slices"

// Category palette. Nodes are tagged with a coarse category (storage,
// network, security, ...) and pick up a default fill from this table so a
// diagram reads consistently without per-node styling. The colors follow
// the conventions of architecture diagramming tools: green for storage,
// purple for networking, red for security, orange for compute.
var palette = map[string]Attrs{
	"storage":  {KeyFillColor: "#7AA116", KeyFontColor: "white"},
	"network":  {KeyFillColor: "#8C4FFF", KeyFontColor: "white"},
	"security": {KeyFillColor: "#DD344C", KeyFontColor: "white"},
	"compute":  {KeyFillColor: "#ED7100", KeyFontColor: "white"},
	"iac":      {KeyFillColor: "#E7157B", KeyFontColor: "white"},
	"client":   {KeyFillColor: "#232F3E", KeyFontColor: "white"},
	"code":     {KeyFillColor: "#3178C6", KeyFontColor: "white"},
	"generic":  {KeyFillColor: "white", KeyFontColor: "black"},
}

// Palette returns the default attributes for a node category.
// Unknown categories fall back to the generic palette entry.
// The returned Attrs is a copy and safe to modify.
func Palette(category string) Attrs {
	if p, ok := palette[category]; ok {
		return p.Clone()
	}
	return palette["generic"].Clone()
}

// Categories returns the recognized category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
