// internal/commands/browse.go
package densebench

import (
	"github.com/mwiater/densebench/internal/tui"
	"github.com/spf13/cobra"
)

var browseCompute bool

// browseCmd opens the interactive leaderboard browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the leaderboard interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		b, err := loadBenchmark(cmd.Context(), cfg, browseCompute)
		if err != nil {
			return err
		}
		reportFailures(cmd.ErrOrStderr(), b.failed)
		return tui.Run(b.views, cfg.PageTitle())
	},
}

func init() {
	addComputeFlag(browseCmd, &browseCompute)
	rootCmd.AddCommand(browseCmd)
}
