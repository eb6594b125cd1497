package cli

import (
	"github.com/spf13/cobra"

	"github.com/archigram/archigram/internal/web"
	"github.com/archigram/archigram/pkg/pipeline"
	"github.com/archigram/archigram/pkg/render"
)

// newServeCmd creates the serve command, which runs the HTTP preview
// server until interrupted.
func newServeCmd() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagram preview HTTP server",
		Long: `Run an HTTP server that renders diagram specs on demand.

POST a JSON spec to /render to receive the rendered image; GET /healthz
reports whether a render backend is installed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner := pipeline.NewRunner(render.NewGraphviz(), buildCache(&buildOpts{noCache: noCache}, logger), logger)
			if !runner.Available() {
				printWarning("rendering backend unavailable: /render will return 503")
			}

			srv := web.NewServer(runner, logger)
			logger.Info("Preview server listening", "addr", addr)
			printDetail("listening on http://%s", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8361", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always render, skip the artifact cache")

	return cmd
}
