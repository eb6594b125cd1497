package style

import (
	"maps"
	"slices"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		attrs    Attrs
		defaults Attrs
		want     Attrs
	}{
		{
			name: "BothEmpty",
			want: Attrs{},
		},
		{
			name:     "DefaultsOnly",
			defaults: Attrs{KeyColor: "blue", KeyStyle: LineSolid},
			want:     Attrs{KeyColor: "blue", KeyStyle: LineSolid},
		},
		{
			name:  "AttrsOnly",
			attrs: Attrs{KeyColor: "red"},
			want:  Attrs{KeyColor: "red"},
		},
		{
			name:     "AttrsWinPerKey",
			attrs:    Attrs{KeyColor: "red"},
			defaults: Attrs{KeyColor: "blue", KeyStyle: LineDashed},
			want:     Attrs{KeyColor: "red", KeyStyle: LineDashed},
		},
		{
			name:     "UnknownKeysRetained",
			attrs:    Attrs{"myextension": "42"},
			defaults: Attrs{"shape": "hexagon"},
			want:     Attrs{"myextension": "42", "shape": "hexagon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.attrs, tt.defaults)
			if !maps.Equal(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	attrs := Attrs{KeyColor: "red"}
	defaults := Attrs{KeyColor: "blue", KeyStyle: LineDotted}

	Resolve(attrs, defaults)

	if attrs[KeyColor] != "red" || len(attrs) != 1 {
		t.Errorf("attrs mutated: %v", attrs)
	}
	if defaults[KeyColor] != "blue" || defaults[KeyStyle] != LineDotted {
		t.Errorf("defaults mutated: %v", defaults)
	}
}

func TestAttrsClone(t *testing.T) {
	var nilAttrs Attrs
	if got := nilAttrs.Clone(); got != nil {
		t.Errorf("Clone() of nil = %v, want nil", got)
	}

	a := Attrs{KeyColor: "red"}
	b := a.Clone()
	b[KeyColor] = "green"
	if a[KeyColor] != "red" {
		t.Errorf("Clone shares storage: original changed to %q", a[KeyColor])
	}
}

func TestAttrsSortedKeys(t *testing.T) {
	a := Attrs{"z": "1", "a": "2", "m": "3"}
	got := a.SortedKeys()
	want := []string{"a", "m", "z"}
	if !slices.Equal(got, want) {
		t.Errorf("SortedKeys() = %v, want %v", got, want)
	}
}

func TestAttrsNilReceiver(t *testing.T) {
	var a Attrs
	if a.Get("color") != "" {
		t.Error("Get on nil Attrs should return empty string")
	}
	if a.Has("color") {
		t.Error("Has on nil Attrs should report false")
	}
	if keys := a.SortedKeys(); len(keys) != 0 {
		t.Errorf("SortedKeys on nil Attrs = %v, want empty", keys)
	}
}

func TestPalette(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantFill bool
	}{
		{name: "Storage", category: "storage", wantFill: true},
		{name: "Network", category: "network", wantFill: true},
		{name: "UnknownFallsBackToGeneric", category: "does-not-exist", wantFill: true},
		{name: "EmptyFallsBackToGeneric", category: "", wantFill: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Palette(tt.category)
			if tt.wantFill && !got.Has(KeyFillColor) {
				t.Errorf("Palette(%q) has no %s: %v", tt.category, KeyFillColor, got)
			}
		})
	}

	// Unknown categories resolve to the same styling as generic.
	unknown := Palette("does-not-exist")
	generic := Palette("generic")
	if !maps.Equal(unknown, generic) {
		t.Errorf("unknown category = %v, want generic %v", unknown, generic)
	}
}

func TestPaletteReturnsCopies(t *testing.T) {
	a := Palette("storage")
	a[KeyFillColor] = "#000000"
	b := Palette("storage")
	if b[KeyFillColor] == "#000000" {
		t.Error("Palette returns shared storage; callers can corrupt the palette")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if !slices.Contains(cats, "generic") {
		t.Errorf("Categories() = %v, missing generic", cats)
	}
	if !slices.IsSorted(cats) {
		t.Errorf("Categories() not sorted: %v", cats)
	}
}
