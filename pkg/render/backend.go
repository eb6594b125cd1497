package render

import (
	"context"

	"github.com/archigram/archigram/pkg/diagram"
)

// Result is the terminal outcome of one render attempt. A backend always
// returns a Result; no backend-level error or panic escapes Render.
type Result struct {
	OK         bool
	OutputFile string // path of the written artifact, set when OK
	Err        error  // human-readable failure, set when !OK
}

// Backend is the capability boundary to an external layout and
// rasterization engine. The engine is optional at runtime: probe
// Available once at startup and treat false as an expected, recoverable
// condition rather than an error.
type Backend interface {
	// Available reports whether the backend can render. It is a pure
	// capability check with no side effects.
	Available() bool

	// Render lays out and writes the diagram's artifact into the current
	// working directory as diagram.OutputFile(). Internal failures of any
	// kind are converted into Result{OK: false}.
	Render(ctx context.Context, d *diagram.Diagram) Result
}

// failure wraps an error into a failed Result.
func failure(err error) Result { return Result{Err: err} }
