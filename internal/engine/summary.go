package engine

import (
	"fmt"
	"sort"

	"github.com/mwiater/densebench/internal/results"
)

// ComputeModelRanks averages every model's Mean_Dice rank over all (dataset,
// method) pairs it appears in and orders the models best first. Equal
// averages keep first-seen order.
func ComputeModelRanks(table *results.Table, cat Catalog) []results.ModelRank {
	var order []string
	ranks := make(map[string][]int)

	for _, dataset := range table.DatasetNames() {
		for _, method := range table.Methods() {
			tbl, _ := table.Method(method)
			ds, ok := tbl.Dataset(dataset)
			if !ok {
				continue
			}
			for _, r := range RankModels(ds.Models, results.MeanDice) {
				if _, seen := ranks[r.ModelKey]; !seen {
					order = append(order, r.ModelKey)
				}
				ranks[r.ModelKey] = append(ranks[r.ModelKey], r.Rank)
			}
		}
	}

	out := make([]results.ModelRank, 0, len(order))
	for _, model := range order {
		avg := meanInts(ranks[model])
		out = append(out, results.ModelRank{
			ModelKey:         model,
			ModelDisplay:     cat.ModelDisplay(model),
			AvgRank:          avg,
			AvgRankDisplay:   fmt.Sprintf("%.2f", avg),
			TotalComparisons: len(ranks[model]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgRank < out[j].AvgRank
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// ComputeSummary rebuilds the summary statistics document from raw tables.
func ComputeSummary(table *results.Table, cat Catalog) results.Summary {
	return results.Summary{
		ModelRanks:       ComputeModelRanks(table, cat),
		DatasetSota:      ComputeDatasetSota(table, cat),
		MethodComparison: ComputeMethodComparison(table, cat),
	}
}
