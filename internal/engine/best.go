package engine

import (
	"fmt"

	"github.com/mwiater/densebench/internal/results"
)

// Scope restricts a best-result search. Empty fields are unrestricted; an
// empty Metric means Mean_Dice.
type Scope struct {
	Dataset string
	Model   string
	Metric  string
}

// SelectBest returns the highest-mean observation within scope. Candidates
// are visited by method order, then dataset and model document order; the
// first maximum wins. It reports false when scope holds no observation.
func SelectBest(table *results.Table, cat Catalog, scope Scope) (results.DatasetSota, bool) {
	metric := scope.Metric
	if metric == "" {
		metric = results.MeanDice
	}

	var (
		best                  results.MetricObservation
		bestMethod, bestModel string
		bestDataset           string
		found                 bool
	)
	for _, method := range table.Methods() {
		tbl, _ := table.Method(method)
		for _, ds := range tbl.Datasets() {
			if scope.Dataset != "" && ds.Name != scope.Dataset {
				continue
			}
			for _, m := range ds.Models {
				if scope.Model != "" && m.Key != scope.Model {
					continue
				}
				obs, ok := m.Metric(metric)
				if !ok {
					continue
				}
				if !found || obs.Mean > best.Mean {
					best, bestMethod, bestModel, bestDataset, found = obs, method, m.Key, ds.Name, true
				}
			}
		}
	}
	if !found {
		return results.DatasetSota{}, false
	}

	return results.DatasetSota{
		MDice:          best.Mean,
		MDiceDisplay:   fmt.Sprintf("%.4f", best.Mean),
		CILower:        best.CILower,
		CIUpper:        best.CIUpper,
		Model:          cat.ModelDisplay(bestModel),
		ModelKey:       bestModel,
		Method:         cat.MethodDisplay(bestMethod),
		MethodKey:      bestMethod,
		Dataset:        bestDataset,
		DatasetDisplay: cat.DatasetDisplay(bestDataset),
		Category:       string(cat.Classify(bestDataset)),
	}, true
}

// ComputeDatasetSota selects the best Mean_Dice result of every dataset.
func ComputeDatasetSota(table *results.Table, cat Catalog) map[string]results.DatasetSota {
	out := make(map[string]results.DatasetSota)
	for _, dataset := range table.DatasetNames() {
		if sota, ok := SelectBest(table, cat, Scope{Dataset: dataset}); ok {
			out[dataset] = sota
		}
	}
	return out
}

// BestForModel returns the best Mean_Dice result a model reached anywhere.
func BestForModel(table *results.Table, cat Catalog, model string) (results.DatasetSota, bool) {
	return SelectBest(table, cat, Scope{Model: model})
}
