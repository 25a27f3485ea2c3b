// internal/commands/export.go
package densebench

import (
	"fmt"

	"github.com/mwiater/densebench/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportPath    string
	exportCompute bool
)

// exportCmd writes the derived views to a spreadsheet.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the derived views to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		b, err := loadBenchmark(cmd.Context(), cfg, exportCompute)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportFailures(out, b.failed)

		if err := export.Workbook(b.views, b.catalog, exportPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s workbook written to %s\n", successText("ok"), exportPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPath, "xlsx", "densebench.xlsx", "destination workbook path")
	addComputeFlag(exportCmd, &exportCompute)
	rootCmd.AddCommand(exportCmd)
}
