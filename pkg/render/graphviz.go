package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/archigram/archigram/pkg/diagram"
)

// Graphviz renders diagrams through the Graphviz layout engine.
// The engine ships embedded (via WASM), so Available is normally true;
// it reports false only when the runtime cannot be initialized in the
// current environment.
type Graphviz struct{}

// NewGraphviz creates the Graphviz-backed renderer.
func NewGraphviz() *Graphviz { return &Graphviz{} }

// Available probes whether the Graphviz runtime can be initialized.
// The probe instance is closed immediately; no state is retained.
func (g *Graphviz) Available() bool {
	gv, err := graphviz.New(context.Background())
	if err != nil {
		return false
	}
	_ = gv.Close()
	return true
}

// Render lays out the diagram and writes diagram.OutputFile() into the
// current working directory. Layout crashes, unsupported attributes, and
// write failures all come back as Result{OK: false}; panics from the
// engine are recovered at this boundary.
func (g *Graphviz) Render(ctx context.Context, d *diagram.Diagram) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(fmt.Errorf("graphviz: layout engine panic: %v", r))
		}
	}()

	dot := ToDOT(d)
	out := d.OutputFile()

	if d.Format() == diagram.FormatDOT {
		if err := os.WriteFile(out, []byte(dot), 0o644); err != nil {
			return failure(fmt.Errorf("write %s: %w", out, err))
		}
		return Result{OK: true, OutputFile: out}
	}

	format, err := imageFormat(d.Format())
	if err != nil {
		return failure(err)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return failure(fmt.Errorf("init graphviz: %w", err))
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return failure(fmt.Errorf("parse DOT: %w", err))
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return failure(fmt.Errorf("render: %w", err))
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return failure(fmt.Errorf("write %s: %w", out, err))
	}
	return Result{OK: true, OutputFile: out}
}

// imageFormat maps a diagram format to the Graphviz render format.
func imageFormat(f diagram.Format) (graphviz.Format, error) {
	switch f {
	case diagram.FormatPNG:
		return graphviz.PNG, nil
	case diagram.FormatSVG:
		return graphviz.SVG, nil
	default:
		return "", fmt.Errorf("unsupported render format: %s", f)
	}
}
