package cli

import (
	"github.com/spf13/cobra"

	"github.com/archigram/archigram/pkg/render"
)

// newDoctorCmd creates the doctor command, which reports whether the
// rendering backend can produce artifacts in this environment. The
// probe is a pure capability check with no side effects; missing the
// backend is an expected condition, not a command failure.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check whether the rendering backend is available",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if render.NewGraphviz().Available() {
				printSuccess("rendering backend available (embedded Graphviz)")
				return
			}
			printWarning("rendering backend unavailable")
			printDetail("diagram models can still be built and exported as DOT")
		},
	}
}
