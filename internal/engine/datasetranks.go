package engine

import "github.com/mwiater/densebench/internal/results"

// DatasetRanks maps dataset name to the model's rank on that dataset,
// averaged over the methods it was evaluated under.
type DatasetRanks struct {
	Datasets map[string]float64 `json:"datasets"`
}

// ComputeDatasetRanks ranks each dataset independently under every method
// that contains it and averages each model's per-method ranks. A model never
// ranked on a dataset has no entry for it.
func ComputeDatasetRanks(table *results.Table, models []string) map[string]DatasetRanks {
	models = modelList(table, models)
	out := make(map[string]DatasetRanks, len(models))
	for _, m := range models {
		out[m] = DatasetRanks{Datasets: make(map[string]float64)}
	}

	for _, dataset := range table.DatasetNames() {
		perModel := make(map[string][]int)
		for _, method := range table.Methods() {
			tbl, _ := table.Method(method)
			ds, ok := tbl.Dataset(dataset)
			if !ok {
				continue
			}
			for _, r := range RankModels(ds.Models, results.MeanDice) {
				perModel[r.ModelKey] = append(perModel[r.ModelKey], r.Rank)
			}
		}
		for model, ranks := range perModel {
			entry, ok := out[model]
			if !ok {
				continue
			}
			entry.Datasets[dataset] = meanInts(ranks)
		}
	}
	return out
}
