// Package results is the in-memory store of benchmark results: one ordered
// table per adaptation method plus the precomputed summary document.
//
// Tables are built once by the loader and never mutated afterwards; every
// lookup reports absence with a boolean instead of a zero value.
package results

import (
	"sort"

	"github.com/mwiater/densebench/internal/util"
)

// Recognized metric names.
const (
	MeanDice             = "Mean_Dice"
	MIoU                 = "mIoU"
	PixelAccuracy        = "Pixel_Accuracy"
	MeanAccuracy         = "Mean_Accuracy"
	FrequencyWeightedIoU = "Frequency_Weighted_IoU"
	MeanPrecision        = "Mean_Precision"
	MeanRecall           = "Mean_Recall"
	MeanF1               = "Mean_F1"
)

// MetricObservation is one metric value with its confidence interval.
type MetricObservation struct {
	Mean    float64 `json:"mean"`
	CILower float64 `json:"ci_lower"`
	CIUpper float64 `json:"ci_upper"`
}

// ModelResult holds the metrics one model reached on one dataset under one method.
type ModelResult struct {
	Key     string
	Metrics map[string]MetricObservation
}

// Metric returns the observation for name, if the model reported one.
func (m ModelResult) Metric(name string) (MetricObservation, bool) {
	obs, ok := m.Metrics[name]
	return obs, ok
}

// DatasetResult holds every model evaluated on a dataset, in document order.
type DatasetResult struct {
	Name   string
	Models []ModelResult
}

// Model looks up a model by key.
func (d DatasetResult) Model(key string) (ModelResult, bool) {
	for _, m := range d.Models {
		if m.Key == key {
			return m, true
		}
	}
	return ModelResult{}, false
}

// MethodTable is the parsed content of one per-method results file.
type MethodTable struct {
	name     string
	datasets []DatasetResult
	index    map[string]int
}

// NewMethodTable builds a table from datasets in the given order. A dataset
// name that repeats replaces the earlier entry in place.
func NewMethodTable(name string, datasets []DatasetResult) *MethodTable {
	t := &MethodTable{name: name, index: make(map[string]int, len(datasets))}
	for _, ds := range datasets {
		if i, ok := t.index[ds.Name]; ok {
			t.datasets[i] = ds
			continue
		}
		t.index[ds.Name] = len(t.datasets)
		t.datasets = append(t.datasets, ds)
	}
	return t
}

// Name returns the method key the table was loaded for.
func (t *MethodTable) Name() string { return t.name }

// Datasets returns the datasets in document order. The slice must not be modified.
func (t *MethodTable) Datasets() []DatasetResult { return t.datasets }

// Dataset looks up a dataset by name.
func (t *MethodTable) Dataset(name string) (DatasetResult, bool) {
	i, ok := t.index[name]
	if !ok {
		return DatasetResult{}, false
	}
	return t.datasets[i], true
}

// Table is the full raw result set: method -> dataset -> model -> metric.
type Table struct {
	methods  []string
	byMethod map[string]*MethodTable
}

// NewTable assembles method tables in the given method order. Tables for
// methods missing from order follow in sorted order; nil tables are skipped.
func NewTable(order []string, tables map[string]*MethodTable) *Table {
	t := &Table{byMethod: make(map[string]*MethodTable, len(tables))}
	seen := make(map[string]bool, len(tables))
	for _, m := range order {
		if tbl := tables[m]; tbl != nil && !seen[m] {
			t.methods = append(t.methods, m)
			t.byMethod[m] = tbl
			seen[m] = true
		}
	}
	var rest []string
	for m, tbl := range tables {
		if tbl != nil && !seen[m] {
			rest = append(rest, m)
		}
	}
	sort.Strings(rest)
	for _, m := range rest {
		t.methods = append(t.methods, m)
		t.byMethod[m] = tables[m]
	}
	return t
}

// Methods returns the loaded method keys in order.
func (t *Table) Methods() []string {
	return append([]string(nil), t.methods...)
}

// Method returns the table for a method, if it was loaded.
func (t *Table) Method(name string) (*MethodTable, bool) {
	tbl, ok := t.byMethod[name]
	return tbl, ok
}

// DatasetNames returns the union of dataset names over all methods, in
// first-seen order (method order, then document order).
func (t *Table) DatasetNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range t.methods {
		for _, ds := range t.byMethod[m].datasets {
			if !seen[ds.Name] {
				seen[ds.Name] = true
				names = append(names, ds.Name)
			}
		}
	}
	return names
}

// ModelKeys returns the union of model keys over all methods and datasets, in first-seen order.
func (t *Table) ModelKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, m := range t.methods {
		for _, ds := range t.byMethod[m].datasets {
			for _, model := range ds.Models {
				if !seen[model.Key] {
					seen[model.Key] = true
					keys = append(keys, model.Key)
				}
			}
		}
	}
	return keys
}

// ModelRank is one entry of the precomputed overall leaderboard.
type ModelRank struct {
	ModelKey         string  `json:"model_key"`
	ModelDisplay     string  `json:"model_display"`
	AvgRank          float64 `json:"avg_rank"`
	AvgRankDisplay   string  `json:"avg_rank_display"`
	Position         int     `json:"position"`
	TotalComparisons int     `json:"total_comparisons"`
}

// DatasetSota is the single best observation for a dataset.
type DatasetSota struct {
	MDice          float64 `json:"mDice"`
	MDiceDisplay   string  `json:"mDice_display"`
	CILower        float64 `json:"ci_lower"`
	CIUpper        float64 `json:"ci_upper"`
	Model          string  `json:"model"`
	ModelKey       string  `json:"model_key"`
	Method         string  `json:"method"`
	MethodKey      string  `json:"method_key,omitempty"`
	Dataset        string  `json:"-"`
	DatasetDisplay string  `json:"dataset_display"`
	Category       string  `json:"category"`
}

// MethodComparison is the average Mean_Dice reached by one method.
type MethodComparison struct {
	MethodDisplay   string  `json:"method_display"`
	AvgMDice        float64 `json:"avg_mDice"`
	AvgMDiceDisplay string  `json:"avg_mDice_display"`
	NumExperiments  int     `json:"num_experiments,omitempty"`
}

// Summary is the precomputed statistics document.
type Summary struct {
	ModelRanks       []ModelRank                 `json:"model_ranks"`
	DatasetSota      map[string]DatasetSota      `json:"dataset_sota"`
	MethodComparison map[string]MethodComparison `json:"method_comparison"`
}

// ModelRank looks up the leaderboard entry of a model.
func (s Summary) ModelRank(key string) (ModelRank, bool) {
	for _, r := range s.ModelRanks {
		if r.ModelKey == key {
			return r, true
		}
	}
	return ModelRank{}, false
}

// SotaDatasets returns the dataset keys of DatasetSota in the given order,
// followed by any others sorted by name.
func (s Summary) SotaDatasets(order []string) []string {
	return util.OrderedKeys(order, s.DatasetSota)
}
