package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/archigram/archigram/pkg/diagram"
	"github.com/archigram/archigram/pkg/pipeline"
)

// stubBuilder satisfies Builder with canned behavior.
type stubBuilder struct {
	available bool
	build     func(spec pipeline.Spec) pipeline.BuildResult
}

func (s *stubBuilder) Available() bool { return s.available }

func (s *stubBuilder) Build(ctx context.Context, spec pipeline.Spec) pipeline.BuildResult {
	return s.build(spec)
}

func renderingStub(t *testing.T, payload []byte) *stubBuilder {
	t.Helper()
	return &stubBuilder{
		available: true,
		build: func(spec pipeline.Spec) pipeline.BuildResult {
			name := diagram.Slug(spec.Title) + ".png"
			path := filepath.Join(spec.OutputDir, name)
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				t.Fatalf("stub write: %v", err)
			}
			return pipeline.BuildResult{OK: true, Path: path, Message: "rendered", RunID: "test-run"}
		},
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		want      string
	}{
		{name: "BackendPresent", available: true, want: `"renderer":true`},
		{name: "BackendMissing", available: false, want: `"renderer":false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&stubBuilder{available: tt.available}, nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body = %s, want %s", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv := NewServer(renderingStub(t, []byte("png-bytes")), nil)

	body := `{"title": "My Diagram", "nodes": [{"id": "a"}]}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("X-Archigram-Run"); got != "test-run" {
		t.Errorf("X-Archigram-Run = %q", got)
	}
	if rec.Body.String() != "png-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRenderStructuralErrorIs422(t *testing.T) {
	builder := &stubBuilder{
		available: true,
		build: func(spec pipeline.Spec) pipeline.BuildResult {
			err := &diagram.StructuralError{Violations: []error{diagram.ErrUnknownNode}}
			return pipeline.BuildResult{Message: err.Error(), Err: err, RunID: "test-run"}
		},
	}
	srv := NewServer(builder, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"title": "T"}`)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "structural violation") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRenderOtherFailureIs500(t *testing.T) {
	builder := &stubBuilder{
		available: true,
		build: func(spec pipeline.Spec) pipeline.BuildResult {
			return pipeline.BuildResult{Message: "render failed", Err: errors.New("render failed")}
		},
	}
	srv := NewServer(builder, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"title": "T"}`)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRenderBackendUnavailableIs503(t *testing.T) {
	srv := NewServer(&stubBuilder{available: false}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"title": "T"}`)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRenderRejectsBadJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Malformed", body: `{"title": `},
		{name: "UnknownField", body: `{"title": "T", "bogus": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&stubBuilder{available: true}, nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf strings.Builder
	srv := NewServer(&stubBuilder{available: true}, log.New(&buf))

	// Channels have no JSON encoding, so Encode fails after the header is
	// written.
	rec := httptest.NewRecorder()
	srv.writeJSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})

	if !strings.Contains(buf.String(), "encode response") {
		t.Errorf("encode failure not logged: %q", buf.String())
	}
}

func TestRenderOverridesOutputDir(t *testing.T) {
	var gotDir string
	builder := &stubBuilder{
		available: true,
		build: func(spec pipeline.Spec) pipeline.BuildResult {
			gotDir = spec.OutputDir
			return pipeline.BuildResult{Message: "nope", Err: errors.New("nope")}
		},
	}
	srv := NewServer(builder, nil)

	// Even when the client names a directory, the server renders into its
	// own temp dir.
	rec := httptest.NewRecorder()
	body := `{"title": "T", "output_dir": "/etc"}`
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	if gotDir == "/etc" || gotDir == "" {
		t.Errorf("OutputDir = %q, want server-owned temp dir", gotDir)
	}
}
