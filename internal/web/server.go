// Package web provides a small HTTP preview server for rendering diagram
// specs on demand. It exposes a health probe and a render endpoint that
// accepts a JSON spec and responds with the rendered image.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/archigram/archigram/pkg/diagram"
	"github.com/archigram/archigram/pkg/pipeline"
)

// Builder runs diagram builds. *pipeline.Runner satisfies it; tests may
// substitute a stub.
type Builder interface {
	Available() bool
	Build(ctx context.Context, spec pipeline.Spec) pipeline.BuildResult
}

// Server is the archigram preview HTTP server.
type Server struct {
	builder Builder
	logger  *log.Logger
	router  chi.Router
}

// NewServer creates a Server backed by the given builder. A nil logger
// discards output.
func NewServer(builder Builder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{builder: builder, logger: logger}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the HTTP server on addr and shuts it down gracefully when ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/render", s.handleRender)

	return r
}

// handleHealthz reports server liveness and whether a render backend is
// installed.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"renderer": s.builder.Available(),
	})
}

// handleRender accepts a JSON diagram spec, renders it into a temporary
// directory, and responds with the image bytes.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var spec pipeline.Spec
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid spec: " + err.Error()})
		return
	}

	if !s.builder.Available() {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "no render backend installed"})
		return
	}

	// Renders land in a per-request temp dir so concurrent requests never
	// collide and nothing accumulates on disk.
	tmpDir, err := os.MkdirTemp("", "archigram-preview-*")
	if err != nil {
		s.logger.Error("create temp dir", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	defer os.RemoveAll(tmpDir)
	spec.OutputDir = tmpDir

	result := s.builder.Build(r.Context(), spec)
	if !result.OK {
		status := http.StatusInternalServerError
		var structural *diagram.StructuralError
		if errors.As(result.Err, &structural) {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, status, map[string]any{"error": result.Message, "run": result.RunID})
		return
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		s.logger.Error("read rendered artifact", "path", result.Path, "err", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(result.Path))
	w.Header().Set("X-Archigram-Run", result.RunID)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".dot":
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
