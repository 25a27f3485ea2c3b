// internal/commands/stats.go
package densebench

import (
	"fmt"

	"github.com/mwiater/densebench/internal/engine"
	"github.com/mwiater/densebench/internal/logging"
	"github.com/mwiater/densebench/internal/util"
	"github.com/spf13/cobra"
)

var statsOutput string

// statsCmd derives the summary document from the raw method files.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute the summary statistics from the raw method files",
	Long: `Rank every model on every (dataset, method) pair, average the ranks, pick the
best result per dataset and average mDice per method. The summary is written
as stats.json (by default to the configured summary path) and printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		target := statsOutput
		if target == "" {
			target = cfg.SummaryPath
		}
		if isURL(target) {
			return fmt.Errorf("cannot write summary to %s: use --output with a local path", target)
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		table, failed, err := newLoader(cfg, cat).LoadMethods(cmd.Context())
		if err != nil {
			return err
		}
		reportFailures(out, failed)

		summary := engine.ComputeSummary(table, cat)
		if err := util.WriteJSON(target, summary); err != nil {
			return err
		}
		logging.LogEvent("[ENGINE] wrote summary %s (models=%d datasets=%d)", target, len(summary.ModelRanks), len(summary.DatasetSota))

		fmt.Fprintln(out, sectionStyle.Render("Model ranks"))
		fmt.Fprintln(out, modelRanksTable(summary.ModelRanks))
		fmt.Fprintln(out, sectionStyle.Render("Best result per dataset"))
		fmt.Fprintln(out, sotaTable(summary, table.DatasetNames()))
		fmt.Fprintln(out, sectionStyle.Render("Method comparison"))
		fmt.Fprintln(out, methodComparisonTable(summary.MethodComparison, table.Methods()))
		fmt.Fprintf(out, "%s summary written to %s\n", successText("ok"), target)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "where to write stats.json (defaults to the configured summary path)")
	rootCmd.AddCommand(statsCmd)
}
