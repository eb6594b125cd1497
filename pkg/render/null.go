package render

import (
	"context"
	"errors"

	"github.com/archigram/archigram/pkg/diagram"
)

// ErrUnavailable is the failure reported by [NullBackend.Render].
var ErrUnavailable = errors.New("rendering backend unavailable")

// NullBackend is a backend for environments without a layout engine.
// Available always reports false and Render always fails. Useful for
// testing the capability short-circuit and for running model-only
// workflows where no artifact is produced.
type NullBackend struct{}

// NewNullBackend creates a backend that never renders.
func NewNullBackend() *NullBackend { return &NullBackend{} }

// Available always reports false.
func (*NullBackend) Available() bool { return false }

// Render always returns a failed result without touching the filesystem.
func (*NullBackend) Render(ctx context.Context, d *diagram.Diagram) Result {
	return failure(ErrUnavailable)
}

var _ Backend = (*NullBackend)(nil)
var _ Backend = (*Graphviz)(nil)
