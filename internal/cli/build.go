package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archigram/archigram/pkg/cache"
	"github.com/archigram/archigram/pkg/manifest"
	"github.com/archigram/archigram/pkg/pipeline"
	"github.com/archigram/archigram/pkg/render"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	outputDir string // overrides the manifest's output directory
	format    string // overrides the manifest's output format
	noCache   bool   // skip the artifact cache
}

// newBuildCmd creates the build command for rendering diagram manifests.
// With no arguments it discovers manifests in the current directory and
// offers an interactive picker.
func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [manifest...]",
		Short: "Render diagram manifests to image files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "output directory (overrides manifest)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, svg, dot (overrides manifest)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always render, skip the artifact cache")

	return cmd
}

// runBuild resolves the manifest list, sets up the runner, and builds
// each manifest in turn. The first failed build aborts the run.
func runBuild(ctx context.Context, args []string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)

	paths := args
	if len(paths) == 0 {
		discovered, err := manifest.Discover(".")
		if err != nil {
			return err
		}
		if len(discovered) == 0 {
			return fmt.Errorf("no %s manifests in the current directory", manifest.Ext)
		}
		picked, err := pickManifest(discovered)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil // user quit the picker
		}
		paths = []string{picked}
	}

	runner := pipeline.NewRunner(render.NewGraphviz(), buildCache(opts, logger), logger)
	if !runner.Available() {
		printWarning("rendering backend unavailable: diagrams cannot be rasterized in this environment")
	}

	for _, path := range paths {
		if err := buildOne(ctx, runner, path, opts); err != nil {
			return err
		}
	}
	return nil
}

// buildOne loads a single manifest and runs the pipeline for it.
func buildOne(ctx context.Context, runner *pipeline.Runner, path string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debug("Loading manifest", "path", path)

	spec, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if opts.outputDir != "" {
		spec.OutputDir = opts.outputDir
	}
	if opts.format != "" {
		spec.Format = opts.format
	}

	sp := newSpinner(ctx, fmt.Sprintf("Rendering %s", spec.Title))
	sp.start()
	result := runner.Build(ctx, spec)
	sp.stop()

	if !result.OK {
		printError("%s: %s", filepath.Base(path), result.Message)
		return fmt.Errorf("build %s failed", path)
	}

	printSuccess("%s", spec.Title)
	printFile(result.Path)
	if result.Cached {
		printDetail("artifact from cache (%s)", result.Duration.Round(time.Millisecond))
	}
	return nil
}

// buildCache picks the artifact cache for CLI builds: a per-user file
// cache, or the null cache with --no-cache or when the cache directory
// cannot be created.
func buildCache(opts *buildOpts, logger *log.Logger) cache.Cache {
	if opts.noCache {
		return cache.NewNullCache()
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(filepath.Join(base, "archigram", "artifacts"))
	if err != nil {
		logger.Debug("Artifact cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}
