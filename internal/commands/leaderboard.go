// internal/commands/leaderboard.go
package densebench

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mwiater/densebench/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	leaderboardCategory string
	leaderboardCompute  bool
)

// parseCategory accepts a named category case-insensitively; "" and
// "overall" select the overall order.
func parseCategory(name string) (catalog.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "overall") {
		return "", nil
	}
	for _, c := range catalog.NamedCategories {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	if near := closestCategory(name); near != "" {
		return "", fmt.Errorf("unknown category %q (did you mean %s?)", name, near)
	}
	return "", fmt.Errorf("unknown category %q (want overall, nuclear, gland or tissue)", name)
}

func closestCategory(name string) string {
	name = strings.ToLower(name)
	for _, c := range []string{"overall", "nuclear", "gland", "tissue"} {
		if levenshtein.ComputeDistance(name, c) <= 2 {
			return c
		}
	}
	return ""
}

// leaderboardCmd prints the leaderboard to the terminal.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the model leaderboard",
	Long: `Print the leaderboard ordered by overall position, or by the average rank
within one dataset category. Models without results in the category sort last.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := parseCategory(leaderboardCategory)
		if err != nil {
			return err
		}
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		b, err := loadBenchmark(cmd.Context(), cfg, leaderboardCompute)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportFailures(out, b.failed)

		title := "Overall"
		if category != "" {
			title = string(category)
		}
		fmt.Fprintln(out, sectionStyle.Render(fmt.Sprintf("%s leaderboard", title)))
		fmt.Fprintln(out, leaderboardTable(b.views.CategoryLeaderboard(category), category))
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardCategory, "category", "", "order by category: overall, nuclear, gland or tissue")
	addComputeFlag(leaderboardCmd, &leaderboardCompute)
	rootCmd.AddCommand(leaderboardCmd)
}
