// Package engine derives the ranked, averaged and pivoted views of the
// benchmark from a frozen results.Table.
//
// Every function here is a pure transform: it reads the table, builds local
// accumulators in a single pass and returns fresh values. Running any of them
// twice over the same table yields equal output.
package engine

import (
	"sort"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/results"
	"gonum.org/v1/gonum/stat"
)

// UnrankedSentinel is the average rank reported for a model with no
// observations in a category. It sorts after every real rank.
const UnrankedSentinel = 999.0

// Catalog is the configuration the engine reads categories and display names from.
type Catalog interface {
	Classify(dataset string) catalog.Category
	ModelDisplay(key string) string
	MethodDisplay(key string) string
	DatasetDisplay(key string) string
}

// Rank is the 1-based position of a model within one dataset.
type Rank struct {
	ModelKey string  `json:"model_key"`
	Rank     int     `json:"rank"`
	Mean     float64 `json:"mean"`
}

// RankModels ranks models by metric, highest mean first. Models without the
// metric are left out; equal means keep their input order.
func RankModels(models []results.ModelResult, metric string) []Rank {
	ranked := make([]Rank, 0, len(models))
	for _, m := range models {
		obs, ok := m.Metric(metric)
		if !ok {
			continue
		}
		ranked = append(ranked, Rank{ModelKey: m.Key, Mean: obs.Mean})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Mean > ranked[j].Mean
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// forEachRanking calls fn with the Mean_Dice ranking of every (method,
// dataset) pair, methods in table order and datasets in document order.
func forEachRanking(table *results.Table, fn func(method string, ds results.DatasetResult, ranks []Rank)) {
	for _, method := range table.Methods() {
		tbl, _ := table.Method(method)
		for _, ds := range tbl.Datasets() {
			fn(method, ds, RankModels(ds.Models, results.MeanDice))
		}
	}
}

// modelList returns models, or every model in the table when models is nil.
func modelList(table *results.Table, models []string) []string {
	if models == nil {
		return table.ModelKeys()
	}
	return models
}

func mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

func meanInts(values []int) float64 {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	return mean(fs)
}
