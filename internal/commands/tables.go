// internal/commands/tables.go
package densebench

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/engine"
	"github.com/mwiater/densebench/internal/results"
	"github.com/mwiater/densebench/internal/util"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// leaderboardTable renders rows in the order given.
func leaderboardTable(rows []engine.LeaderboardRow, category catalog.Category) string {
	headers := []string{"#", "Model", "Avg Rank", "Comparisons"}
	for _, c := range catalog.NamedCategories {
		headers = append(headers, string(c))
	}
	t := newTable(append(headers, "Best mDice")...)

	for i, lr := range rows {
		pos := "-"
		switch {
		case category == "" && lr.Ranked:
			pos = fmt.Sprintf("%d", lr.Position)
		case category != "":
			if _, ok := lr.Categories.Average(category); ok {
				pos = fmt.Sprintf("%d", i+1)
			}
		}
		avgRank := util.Unranked
		if lr.Ranked {
			avgRank = lr.AvgRankDisplay
		}
		row := []string{pos, lr.ModelDisplay, avgRank, fmt.Sprintf("%d", lr.TotalComparisons)}
		for _, c := range catalog.NamedCategories {
			avg, _ := lr.Categories.Average(c)
			row = append(row, util.FormatRank(avg, engine.UnrankedSentinel))
		}
		best := util.Unranked
		if lr.Best != nil {
			best = fmt.Sprintf("%s (%s)", lr.Best.MDiceDisplay, lr.Best.DatasetDisplay)
		}
		t.Row(append(row, best)...)
	}
	return t.String()
}

func modelRanksTable(ranks []results.ModelRank) string {
	t := newTable("#", "Model", "Avg Rank", "Comparisons")
	for _, r := range ranks {
		t.Row(fmt.Sprintf("%d", r.Position), r.ModelDisplay, r.AvgRankDisplay, fmt.Sprintf("%d", r.TotalComparisons))
	}
	return t.String()
}

func sotaTable(summary results.Summary, order []string) string {
	t := newTable("Dataset", "Category", "Model", "Method", "mDice")
	for _, ds := range summary.SotaDatasets(order) {
		s := summary.DatasetSota[ds]
		t.Row(s.DatasetDisplay, s.Category, s.Model, s.Method, s.MDiceDisplay)
	}
	return t.String()
}

func methodComparisonTable(comparison map[string]results.MethodComparison, order []string) string {
	t := newTable("Method", "Avg mDice", "Experiments")
	for _, m := range order {
		mc, ok := comparison[m]
		if !ok {
			continue
		}
		t.Row(mc.MethodDisplay, mc.AvgMDiceDisplay, fmt.Sprintf("%d", mc.NumExperiments))
	}
	return t.String()
}
