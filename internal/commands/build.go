// internal/commands/build.go
package densebench

import (
	"errors"
	"fmt"

	"github.com/mwiater/densebench/internal/results"
	"github.com/mwiater/densebench/internal/site"
	"github.com/spf13/cobra"
)

var buildCompute bool

// buildCmd loads the benchmark results and renders the static site.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the leaderboard site from the benchmark results",
	Long: `Fetch every per-method results file and the precomputed summary, derive
the leaderboard, category, method and dataset views, and write index.html,
charts.html, views.json and stats.json to the output directory.

A method file that cannot be loaded is skipped. If the summary cannot be
loaded a failure page is written instead and the command exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		b, err := loadBenchmark(cmd.Context(), cfg, buildCompute)
		if err != nil {
			if errors.Is(err, results.ErrSummaryUnavailable) {
				if ferr := site.RenderFailure(cfg.OutputDir, cfg.PageTitle(), err); ferr != nil {
					return fmt.Errorf("%v (and writing the failure page failed: %w)", err, ferr)
				}
				fmt.Fprintf(out, "%s %v\n", failedText("failed"), err)
			}
			return err
		}
		reportFailures(out, b.failed)

		opts := site.Options{
			OutDir:  cfg.OutputDir,
			Title:   cfg.PageTitle(),
			Summary: &b.summary,
		}
		if err := site.Render(b.views, b.catalog, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s site written to %s (%d models, %d methods)\n", successText("ok"), cfg.OutputDir, len(b.views.Leaderboard), len(b.views.Methods))
		return nil
	},
}

func init() {
	addComputeFlag(buildCmd, &buildCompute)
	rootCmd.AddCommand(buildCmd)
}
