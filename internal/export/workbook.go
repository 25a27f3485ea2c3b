// internal/export/workbook.go
// Package export writes the derived benchmark views to a spreadsheet.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/engine"
	"github.com/mwiater/densebench/internal/logging"
	"github.com/mwiater/densebench/internal/util"
)

// Sheet names, in workbook order.
const (
	LeaderboardSheet  = "Leaderboard"
	CategoriesSheet   = "Categories"
	MethodsSheet      = "Methods"
	DatasetRanksSheet = "DatasetRanks"
	SotaSheet         = "SOTA"
)

// Workbook writes one sheet per view to path. Absent values are left blank;
// the unranked sentinel is never written as a number.
func Workbook(views engine.Views, cat *catalog.Catalog, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name  string
		write func(*excelize.File, string) error
	}{
		{LeaderboardSheet, func(f *excelize.File, s string) error { return writeLeaderboard(f, s, views) }},
		{CategoriesSheet, func(f *excelize.File, s string) error { return writeCategories(f, s, views) }},
		{MethodsSheet, func(f *excelize.File, s string) error { return writeMethods(f, s, views, cat) }},
		{DatasetRanksSheet, func(f *excelize.File, s string) error { return writeDatasetRanks(f, s, views, cat) }},
		{SotaSheet, func(f *excelize.File, s string) error { return writeSota(f, s, views, cat) }},
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		if err := sheet.write(f, sheet.name); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	logging.LogEvent("[EXPORT] wrote %s (%d models)", path, len(views.Leaderboard))
	return nil
}

// writeRows writes rows starting at A1. A nil cell stays blank.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func categoryValue(r engine.CategoryRanks, c catalog.Category) any {
	if avg, ok := r.Average(c); ok {
		return avg
	}
	return nil
}

func writeLeaderboard(f *excelize.File, sheet string, views engine.Views) error {
	header := []any{"Position", "Model", "Avg Rank", "Comparisons"}
	for _, c := range catalog.NamedCategories {
		header = append(header, string(c))
	}
	header = append(header, "Best mDice", "Best Dataset", "Best Method")

	rows := [][]any{header}
	for _, lr := range views.Leaderboard {
		row := []any{nil, lr.ModelDisplay, nil, lr.TotalComparisons}
		if lr.Ranked {
			row[0] = lr.Position
			row[2] = lr.AvgRank
		}
		for _, c := range catalog.NamedCategories {
			row = append(row, categoryValue(lr.Categories, c))
		}
		if lr.Best != nil {
			row = append(row, lr.Best.MDice, lr.Best.DatasetDisplay, lr.Best.Method)
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func writeCategories(f *excelize.File, sheet string, views engine.Views) error {
	rows := [][]any{{"Category", "Rank", "Model", "Avg Rank", "Datasets Ranked"}}
	for _, c := range catalog.NamedCategories {
		for i, lr := range views.CategoryLeaderboard(c) {
			avg, ok := lr.Categories.Average(c)
			if !ok {
				rows = append(rows, []any{string(c), nil, lr.ModelDisplay, nil, 0})
				continue
			}
			rows = append(rows, []any{string(c), i + 1, lr.ModelDisplay, avg, len(lr.Categories.Ranks[c])})
		}
	}
	return writeRows(f, sheet, rows)
}

func writeMethods(f *excelize.File, sheet string, views engine.Views, cat *catalog.Catalog) error {
	header := []any{"Model"}
	for _, m := range views.Methods {
		header = append(header, cat.MethodDisplay(m))
	}
	rows := [][]any{header}
	for _, lr := range views.Leaderboard {
		perf, ok := views.MethodPerformance[lr.ModelKey]
		if !ok {
			continue
		}
		row := []any{lr.ModelDisplay}
		for _, m := range views.Methods {
			if avg, ok := perf.Average(m); ok {
				row = append(row, avg)
				continue
			}
			row = append(row, nil)
		}
		rows = append(rows, row)
	}

	rows = append(rows, []any{}, []any{"Method", "Avg mDice", "Experiments"})
	for _, m := range views.Methods {
		mc, ok := views.MethodComparison[m]
		if !ok {
			continue
		}
		rows = append(rows, []any{cat.MethodDisplay(m), mc.AvgMDice, mc.NumExperiments})
	}
	return writeRows(f, sheet, rows)
}

func writeDatasetRanks(f *excelize.File, sheet string, views engine.Views, cat *catalog.Catalog) error {
	header := []any{"Model"}
	for _, ds := range views.Datasets {
		header = append(header, cat.DatasetDisplay(ds))
	}
	rows := [][]any{header}
	for _, lr := range views.Leaderboard {
		dr, ok := views.DatasetRanks[lr.ModelKey]
		if !ok || len(dr.Datasets) == 0 {
			continue
		}
		row := []any{lr.ModelDisplay}
		for _, ds := range views.Datasets {
			if avg, ok := dr.Datasets[ds]; ok {
				row = append(row, avg)
				continue
			}
			row = append(row, nil)
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func writeSota(f *excelize.File, sheet string, views engine.Views, cat *catalog.Catalog) error {
	rows := [][]any{{"Dataset", "Category", "Model", "Method", "mDice", "CI Lower", "CI Upper"}}
	for _, ds := range util.OrderedKeys(views.Datasets, views.DatasetSota) {
		s := views.DatasetSota[ds]
		display := s.DatasetDisplay
		if display == "" {
			display = cat.DatasetDisplay(ds)
		}
		rows = append(rows, []any{display, s.Category, s.Model, s.Method, s.MDice, s.CILower, s.CIUpper})
	}
	return writeRows(f, sheet, rows)
}
