package engine

import (
	"sort"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/results"
)

// LeaderboardRow joins a model's summary rank with its derived views.
// Ranked is false for a model present in raw results but missing from the summary.
type LeaderboardRow struct {
	ModelKey         string               `json:"model_key"`
	ModelDisplay     string               `json:"model_display"`
	Position         int                  `json:"position"`
	AvgRank          float64              `json:"avg_rank"`
	AvgRankDisplay   string               `json:"avg_rank_display"`
	TotalComparisons int                  `json:"total_comparisons"`
	Ranked           bool                 `json:"ranked"`
	Categories       CategoryRanks        `json:"categories"`
	Best             *results.DatasetSota `json:"best,omitempty"`
}

// Views is every derived structure the site renders, computed in one pass.
type Views struct {
	Methods           []string                            `json:"methods"`
	Datasets          []string                            `json:"datasets"`
	Leaderboard       []LeaderboardRow                    `json:"leaderboard"`
	CategoryRanks     map[string]CategoryRanks            `json:"category_ranks"`
	MethodPerformance map[string]MethodPerformance        `json:"method_performance"`
	DatasetRanks      map[string]DatasetRanks             `json:"dataset_ranks"`
	DatasetSota       map[string]results.DatasetSota      `json:"dataset_sota"`
	MethodComparison  map[string]results.MethodComparison `json:"method_comparison"`
}

// Build derives every view from the raw table and the precomputed summary.
// Models in the summary come first in position order; models only present
// in raw results follow, unranked. A model only present in the summary keeps
// its row with sentinel category ranks.
func Build(table *results.Table, summary results.Summary, cat Catalog) Views {
	ranked := append([]results.ModelRank(nil), summary.ModelRanks...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Position < ranked[j].Position })

	models := make([]string, 0, len(ranked))
	inSummary := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		if inSummary[r.ModelKey] {
			continue
		}
		inSummary[r.ModelKey] = true
		models = append(models, r.ModelKey)
	}
	for _, key := range table.ModelKeys() {
		if !inSummary[key] {
			models = append(models, key)
		}
	}

	categoryRanks := ComputeCategoryRanks(table, cat, models)

	v := Views{
		Methods:           table.Methods(),
		Datasets:          table.DatasetNames(),
		CategoryRanks:     categoryRanks,
		MethodPerformance: ComputeMethodPerformance(table),
		DatasetRanks:      ComputeDatasetRanks(table, models),
		DatasetSota:       copySota(summary.DatasetSota),
		MethodComparison:  copyComparison(summary.MethodComparison),
	}

	v.Leaderboard = make([]LeaderboardRow, 0, len(models))
	for _, key := range models {
		row := LeaderboardRow{
			ModelKey:     key,
			ModelDisplay: cat.ModelDisplay(key),
			Categories:   categoryRanks[key],
		}
		if r, ok := summary.ModelRank(key); ok {
			row.Ranked = true
			row.Position = r.Position
			row.AvgRank = r.AvgRank
			row.AvgRankDisplay = r.AvgRankDisplay
			row.TotalComparisons = r.TotalComparisons
			if r.ModelDisplay != "" {
				row.ModelDisplay = r.ModelDisplay
			}
		}
		if best, ok := BestForModel(table, cat, key); ok {
			row.Best = &best
		}
		v.Leaderboard = append(v.Leaderboard, row)
	}
	return v
}

// CategoryLeaderboard returns the leaderboard rows ordered by category
// average, best first and unranked last. An empty category orders by the
// summary position, unranked models last.
func (v Views) CategoryLeaderboard(category catalog.Category) []LeaderboardRow {
	rows := append([]LeaderboardRow(nil), v.Leaderboard...)
	if category == "" {
		return rows
	}
	entries := make([]CategoryEntry, len(rows))
	byKey := make(map[string]LeaderboardRow, len(rows))
	for i, r := range rows {
		entries[i] = CategoryEntry{ModelKey: r.ModelKey, Ranks: r.Categories}
		byKey[r.ModelKey] = r
	}
	SortByCategory(entries, category)
	for i, e := range entries {
		rows[i] = byKey[e.ModelKey]
	}
	return rows
}

func copySota(in map[string]results.DatasetSota) map[string]results.DatasetSota {
	out := make(map[string]results.DatasetSota, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyComparison(in map[string]results.MethodComparison) map[string]results.MethodComparison {
	out := make(map[string]results.MethodComparison, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
