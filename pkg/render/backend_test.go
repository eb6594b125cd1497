package render

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/archigram/archigram/pkg/diagram"
)

func TestNullBackend(t *testing.T) {
	nb := NewNullBackend()

	if nb.Available() {
		t.Error("NullBackend.Available() = true, want false")
	}

	d, err := diagram.New("t").Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	res := nb.Render(context.Background(), d)
	if res.OK {
		t.Error("NullBackend.Render() reported OK")
	}
	if !errors.Is(res.Err, ErrUnavailable) {
		t.Errorf("Err = %v, want ErrUnavailable", res.Err)
	}
}

func TestGraphvizRenderDOT(t *testing.T) {
	t.Chdir(t.TempDir())

	b := diagram.New("Dot Out", diagram.WithFormat(diagram.FormatDOT))
	b.AddNode(nil, "a", "A", "")
	d, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	res := NewGraphviz().Render(context.Background(), d)
	if !res.OK {
		t.Fatalf("Render failed: %v", res.Err)
	}
	if res.OutputFile != "dot_out.dot" {
		t.Errorf("OutputFile = %q", res.OutputFile)
	}

	data, err := os.ReadFile(res.OutputFile)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), `digraph "Dot Out" {`) {
		t.Errorf("artifact does not look like DOT:\n%s", data)
	}
}
