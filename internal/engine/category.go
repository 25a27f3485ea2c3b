package engine

import (
	"math"
	"sort"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/results"
)

// CategoryRanks collects the dataset ranks a model reached, grouped by
// category. Overall is the mean of every rank the model reached, in any category.
type CategoryRanks struct {
	Overall float64                      `json:"overall"`
	Ranks   map[catalog.Category][]int   `json:"ranks"`
	Avg     map[catalog.Category]float64 `json:"avg"`
}

// Average returns the category average and whether it rests on real observations.
func (c CategoryRanks) Average(category catalog.Category) (float64, bool) {
	avg, ok := c.Avg[category]
	if !ok {
		return UnrankedSentinel, false
	}
	return avg, len(c.Ranks[category]) > 0
}

// ComputeCategoryRanks ranks every (method, dataset) pair by Mean_Dice and
// averages each model's ranks per named category. Datasets classified as
// Other only count toward Overall. A category without observations averages
// to UnrankedSentinel. Only models in the list are reported; a nil list
// reports every model in the table.
func ComputeCategoryRanks(table *results.Table, cat Catalog, models []string) map[string]CategoryRanks {
	models = modelList(table, models)

	byCategory := make(map[string]map[catalog.Category][]int, len(models))
	all := make(map[string][]int, len(models))
	for _, m := range models {
		byCategory[m] = make(map[catalog.Category][]int)
	}

	forEachRanking(table, func(_ string, ds results.DatasetResult, ranks []Rank) {
		category := cat.Classify(ds.Name)
		for _, r := range ranks {
			lists, ok := byCategory[r.ModelKey]
			if !ok {
				continue
			}
			all[r.ModelKey] = append(all[r.ModelKey], r.Rank)
			if category == catalog.Other {
				continue
			}
			lists[category] = append(lists[category], r.Rank)
		}
	})

	out := make(map[string]CategoryRanks, len(models))
	for _, m := range models {
		cr := CategoryRanks{
			Overall: UnrankedSentinel,
			Ranks:   make(map[catalog.Category][]int, len(catalog.NamedCategories)),
			Avg:     make(map[catalog.Category]float64, len(catalog.NamedCategories)),
		}
		if len(all[m]) > 0 {
			cr.Overall = meanInts(all[m])
		}
		for _, c := range catalog.NamedCategories {
			ranks := byCategory[m][c]
			cr.Ranks[c] = append([]int{}, ranks...)
			if len(ranks) == 0 {
				cr.Avg[c] = UnrankedSentinel
				continue
			}
			cr.Avg[c] = meanInts(ranks)
		}
		out[m] = cr
	}
	return out
}

// CategoryEntry pairs a model with its category ranks for sorting.
type CategoryEntry struct {
	ModelKey string
	Ranks    CategoryRanks
}

// SortByCategory orders entries by their average rank in category, best
// first. Sentinel averages sort last; ties keep their input order.
func SortByCategory(entries []CategoryEntry, category catalog.Category) {
	sort.SliceStable(entries, func(i, j int) bool {
		return categoryKey(entries[i].Ranks, category) < categoryKey(entries[j].Ranks, category)
	})
}

func categoryKey(r CategoryRanks, category catalog.Category) float64 {
	if category == catalog.Other || category == "" {
		return r.Overall
	}
	avg, ok := r.Average(category)
	if !ok {
		return math.Inf(1)
	}
	return avg
}
