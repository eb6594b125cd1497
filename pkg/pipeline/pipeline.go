// Package pipeline orchestrates the build of one diagram: assemble and
// finalize the model, check the rendering capability, enter the scoped
// output directory, render, and always restore the prior directory.
//
// Every failure category terminates in a [BuildResult]; nothing escapes
// [Runner.Build] as an error or panic. The surrounding reporting layer
// (CLI, web server) decides what to print and which exit codes to use;
// the pipeline itself never writes to a console.
//
// # Usage
//
//	runner := pipeline.NewRunner(render.NewGraphviz(), nil, logger)
//	result := runner.Build(ctx, spec)
//	if !result.OK {
//	    // result.Message explains the failure
//	}
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/archigram/archigram/pkg/cache"
	"github.com/archigram/archigram/pkg/diagram"
	"github.com/archigram/archigram/pkg/observability"
	"github.com/archigram/archigram/pkg/render"
	"github.com/archigram/archigram/pkg/workdir"
)

const (
	// DefaultOutputDir is where artifacts land when a spec names no
	// output directory.
	DefaultOutputDir = "generated-diagrams"

	// DefaultArtifactTTL bounds how long rendered artifacts stay cached.
	DefaultArtifactTTL = 7 * 24 * time.Hour
)

// BuildResult is the terminal outcome of one diagram-build attempt.
// Build never fails with an uncaught error; inspect OK and Message.
type BuildResult struct {
	OK       bool
	Path     string // artifact path relative to the caller's directory, set on success
	Message  string
	Err      error // underlying failure, nil on success
	RunID    string // unique ID for correlating log lines
	Cached   bool   // artifact came from the cache, no render ran
	Duration time.Duration
}

// Runner executes diagram builds. The working-directory scope is
// process-wide state, so a Runner serializes builds: at most one is in
// flight per Runner at a time.
type Runner struct {
	backend render.Backend
	cache   cache.Cache
	logger  *log.Logger

	mu sync.Mutex
}

// NewRunner creates a runner. A nil cache disables artifact caching and
// a nil logger discards output.
func NewRunner(backend render.Backend, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{backend: backend, cache: c, logger: logger}
}

// Available reports whether the rendering backend can produce artifacts.
// Callers use this to describe the missing capability up front instead
// of attempting a build that will short-circuit.
func (r *Runner) Available() bool { return r.backend.Available() }

// Build runs the full pipeline for one spec:
//
//  1. Assemble and finalize the diagram. Structural violations abort
//     before any filesystem or backend interaction.
//  2. Short-circuit if the backend is unavailable. No directory is
//     created.
//  3. Enter the scoped output directory, render, and always exit the
//     scope before returning, whether the render succeeded, failed, or
//     panicked. A failed directory restore is itself a failure.
//  4. Translate the render outcome into a BuildResult.
func (r *Runner) Build(ctx context.Context, spec Spec) BuildResult {
	runID := uuid.NewString()
	logger := r.logger.With("run", runID[:8])
	start := time.Now()
	observability.Build().OnBuildStart(ctx, spec.Title)

	fail := func(err error) BuildResult {
		logger.Error("Build failed", "reason", err)
		return BuildResult{Message: err.Error(), Err: err, RunID: runID, Duration: time.Since(start)}
	}

	d, err := Assemble(spec)
	if err != nil {
		observability.Build().OnAssembleComplete(ctx, spec.Title, 0, 0, err)
		return fail(err)
	}
	observability.Build().OnAssembleComplete(ctx, spec.Title, d.NodeCount(), d.EdgeCount(), nil)
	logger.Info("Assembled diagram", "title", d.Title(), "nodes", d.NodeCount(), "edges", d.EdgeCount())

	if !r.backend.Available() {
		return fail(errors.New("rendering backend unavailable: no layout engine in this environment"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	outDir := spec.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	artifact := filepath.Join(outDir, d.OutputFile())

	dot := render.ToDOT(d)
	key := cache.ArtifactKey(cache.Hash([]byte(dot)), string(d.Format()))
	if data, ok, err := r.cache.Get(ctx, key); ok && err == nil {
		observability.Cache().OnCacheHit(ctx, "artifact")
		// Cache hits bypass the working-directory scope entirely: the
		// artifact is written through an explicit path.
		if err := os.MkdirAll(outDir, 0o755); err == nil {
			if err := os.WriteFile(artifact, data, 0o644); err == nil {
				logger.Info("Artifact from cache", "path", artifact)
				return BuildResult{OK: true, Path: artifact, Message: "rendered (cached)", RunID: runID, Cached: true, Duration: time.Since(start)}
			}
		}
		// Fall through to a fresh render if materializing the hit failed.
	} else {
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	res, scopeErr := r.renderScoped(ctx, d, outDir)
	renderErr := scopeErr
	if renderErr == nil && !res.OK {
		renderErr = res.Err
	}
	observability.Build().OnRenderComplete(ctx, spec.Title, string(d.Format()), time.Since(start), renderErr)
	if scopeErr != nil {
		if res.OK {
			// Rendered, but the prior working directory could not be
			// restored. The artifact exists; the build still fails.
			return fail(fmt.Errorf("rendered %s but failed to restore working directory: %w", artifact, scopeErr))
		}
		return fail(scopeErr)
	}
	if !res.OK {
		return fail(fmt.Errorf("render failed: %w", res.Err))
	}

	if data, err := os.ReadFile(artifact); err == nil {
		if err := r.cache.Set(ctx, key, data, DefaultArtifactTTL); err != nil {
			logger.Warn("Failed to cache artifact", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	logger.Info("Generated artifact", "path", artifact, "elapsed", time.Since(start).Round(time.Millisecond))
	return BuildResult{OK: true, Path: artifact, Message: "rendered", RunID: runID, Duration: time.Since(start)}
}

// renderScoped enters the output directory, renders, and exits the
// scope on every path out, folding a failed restore into the returned
// error. Backend panics are recovered here as a second line of defense
// behind the backend's own recovery.
func (r *Runner) renderScoped(ctx context.Context, d *diagram.Diagram, dir string) (res render.Result, err error) {
	h, enterErr := workdir.Enter(dir)
	if enterErr != nil {
		return render.Result{}, enterErr
	}
	defer func() {
		if exitErr := h.Exit(); exitErr != nil {
			err = errors.Join(err, exitErr)
		}
	}()
	defer func() {
		if rec := recover(); rec != nil {
			res = render.Result{Err: fmt.Errorf("render panic: %v", rec)}
		}
	}()
	return r.backend.Render(ctx, d), nil
}
