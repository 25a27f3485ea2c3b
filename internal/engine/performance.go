package engine

import (
	"fmt"

	"github.com/mwiater/densebench/internal/results"
)

// MethodPerformance holds one model's Mean_Dice values per method. Avg is
// nil for a method the model never appears under.
type MethodPerformance struct {
	Values map[string][]float64 `json:"values"`
	Avg    map[string]*float64  `json:"avg"`
}

// Average returns the model's mean Mean_Dice under method, if it has one.
func (p MethodPerformance) Average(method string) (float64, bool) {
	v := p.Avg[method]
	if v == nil {
		return 0, false
	}
	return *v, true
}

// ComputeMethodPerformance averages each model's Mean_Dice across datasets,
// separately per method. Every model seen in the table gets an Avg entry for
// every loaded method.
func ComputeMethodPerformance(table *results.Table) map[string]MethodPerformance {
	methods := table.Methods()
	values := make(map[string]map[string][]float64)

	for _, method := range methods {
		tbl, _ := table.Method(method)
		for _, ds := range tbl.Datasets() {
			for _, m := range ds.Models {
				obs, ok := m.Metric(results.MeanDice)
				if !ok {
					continue
				}
				if values[m.Key] == nil {
					values[m.Key] = make(map[string][]float64)
				}
				values[m.Key][method] = append(values[m.Key][method], obs.Mean)
			}
		}
	}

	out := make(map[string]MethodPerformance, len(values))
	for _, model := range table.ModelKeys() {
		perMethod := values[model]
		p := MethodPerformance{
			Values: make(map[string][]float64, len(perMethod)),
			Avg:    make(map[string]*float64, len(methods)),
		}
		for _, method := range methods {
			vs := perMethod[method]
			if len(vs) == 0 {
				p.Avg[method] = nil
				continue
			}
			avg := mean(vs)
			p.Values[method] = vs
			p.Avg[method] = &avg
		}
		out[model] = p
	}
	return out
}

// ComputeMethodComparison averages Mean_Dice over every (dataset, model)
// observation of each method. Methods without observations are omitted.
func ComputeMethodComparison(table *results.Table, cat Catalog) map[string]results.MethodComparison {
	out := make(map[string]results.MethodComparison)
	for _, method := range table.Methods() {
		tbl, _ := table.Method(method)
		var scores []float64
		for _, ds := range tbl.Datasets() {
			for _, m := range ds.Models {
				if obs, ok := m.Metric(results.MeanDice); ok {
					scores = append(scores, obs.Mean)
				}
			}
		}
		if len(scores) == 0 {
			continue
		}
		avg := mean(scores)
		out[method] = results.MethodComparison{
			MethodDisplay:   cat.MethodDisplay(method),
			AvgMDice:        avg,
			AvgMDiceDisplay: fmt.Sprintf("%.4f", avg),
			NumExperiments:  len(scores),
		}
	}
	return out
}
