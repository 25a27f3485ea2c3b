// internal/site/site.go
// Package site writes the static leaderboard site from the derived views.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/engine"
	"github.com/mwiater/densebench/internal/logging"
	"github.com/mwiater/densebench/internal/results"
	"github.com/mwiater/densebench/internal/util"
)

// File names written to the output directory.
const (
	IndexFile  = "index.html"
	ChartsFile = "charts.html"
	ViewsFile  = "views.json"
	StatsFile  = "stats.json"
)

// Options controls where and how the site is written.
type Options struct {
	OutDir string
	Title  string
	// Summary is copied to stats.json when set.
	Summary     *results.Summary
	GeneratedAt time.Time
}

type leaderRow struct {
	Position    string
	Model       string
	AvgRank     string
	Comparisons int
	Categories  []string
	Best        string
	Ranked      bool
}

type categoryRow struct {
	Model string
	Avg   string
	Ranks int
}

type categoryTable struct {
	Name string
	Rows []categoryRow
}

type gridRow struct {
	Model string
	Cells []string
}

type comparisonRow struct {
	Method      string
	Color       string
	Avg         string
	Experiments int
}

type sotaRow struct {
	Dataset  string
	Category string
	Model    string
	Method   string
	Score    string
	CI       string
}

type pageData struct {
	Title          string
	Generated      string
	CategoryNames  []string
	Leaderboard    []leaderRow
	Categories     []categoryTable
	MethodNames    []string
	MethodRows     []gridRow
	Comparison     []comparisonRow
	DatasetHeaders []string
	DatasetRows    []gridRow
	Sota           []sotaRow
	ViewsJSON      template.JS
}

type failureData struct {
	Title   string
	Message string
}

// Render writes index.html, charts.html, views.json and, when a summary is
// supplied, stats.json into opts.OutDir.
func Render(views engine.Views, cat *catalog.Catalog, opts Options) error {
	if opts.OutDir == "" {
		return fmt.Errorf("site: output directory is required")
	}
	if opts.Title == "" {
		opts.Title = "PFM-DenseBench"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	payload, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("encode views: %w", err)
	}
	data := buildPage(views, cat, opts)
	data.ViewsJSON = template.JS(payload)

	var index bytes.Buffer
	if err := indexTemplate.Execute(&index, data); err != nil {
		return fmt.Errorf("render %s: %w", IndexFile, err)
	}
	if err := util.WriteFile(filepath.Join(opts.OutDir, IndexFile), index.Bytes()); err != nil {
		return err
	}

	chartsHTML, err := renderCharts(views, cat, opts.Title)
	if err != nil {
		return fmt.Errorf("render %s: %w", ChartsFile, err)
	}
	if err := util.WriteFile(filepath.Join(opts.OutDir, ChartsFile), chartsHTML); err != nil {
		return err
	}

	if err := util.WriteJSON(filepath.Join(opts.OutDir, ViewsFile), views); err != nil {
		return err
	}
	if opts.Summary != nil {
		if err := util.WriteJSON(filepath.Join(opts.OutDir, StatsFile), opts.Summary); err != nil {
			return err
		}
	}

	logging.LogEvent("[SITE] wrote %s (models=%d methods=%d datasets=%d)", opts.OutDir, len(views.Leaderboard), len(views.Methods), len(views.Datasets))
	return nil
}

// RenderFailure writes an index page reporting that the results could not be loaded.
func RenderFailure(outDir, title string, cause error) error {
	if title == "" {
		title = "PFM-DenseBench"
	}
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	var buf bytes.Buffer
	if err := failureTemplate.Execute(&buf, failureData{Title: title, Message: msg}); err != nil {
		return fmt.Errorf("render failure page: %w", err)
	}
	logging.LogEvent("[SITE] wrote failure page to %s: %s", outDir, msg)
	return util.WriteFile(filepath.Join(outDir, IndexFile), buf.Bytes())
}

func buildPage(views engine.Views, cat *catalog.Catalog, opts Options) pageData {
	data := pageData{
		Title:     opts.Title,
		Generated: opts.GeneratedAt.UTC().Format(time.RFC3339),
	}
	for _, c := range catalog.NamedCategories {
		data.CategoryNames = append(data.CategoryNames, string(c))
	}

	for _, row := range views.Leaderboard {
		lr := leaderRow{
			Position:    "-",
			Model:       row.ModelDisplay,
			AvgRank:     util.Unranked,
			Comparisons: row.TotalComparisons,
			Ranked:      row.Ranked,
			Best:        util.Unranked,
		}
		if row.Ranked {
			lr.Position = fmt.Sprintf("%d", row.Position)
			lr.AvgRank = row.AvgRankDisplay
		}
		for _, c := range catalog.NamedCategories {
			avg, _ := row.Categories.Average(c)
			lr.Categories = append(lr.Categories, util.FormatRank(avg, engine.UnrankedSentinel))
		}
		if row.Best != nil {
			lr.Best = fmt.Sprintf("%s (%s, %s)", row.Best.MDiceDisplay, row.Best.DatasetDisplay, row.Best.Method)
		}
		data.Leaderboard = append(data.Leaderboard, lr)
	}

	for _, c := range catalog.NamedCategories {
		table := categoryTable{Name: string(c)}
		for _, row := range views.CategoryLeaderboard(c) {
			avg, _ := row.Categories.Average(c)
			table.Rows = append(table.Rows, categoryRow{
				Model: row.ModelDisplay,
				Avg:   util.FormatRank(avg, engine.UnrankedSentinel),
				Ranks: len(row.Categories.Ranks[c]),
			})
		}
		data.Categories = append(data.Categories, table)
	}

	for _, m := range views.Methods {
		data.MethodNames = append(data.MethodNames, cat.MethodDisplay(m))
	}
	for _, row := range views.Leaderboard {
		perf, ok := views.MethodPerformance[row.ModelKey]
		if !ok {
			continue
		}
		gr := gridRow{Model: row.ModelDisplay}
		for _, m := range views.Methods {
			gr.Cells = append(gr.Cells, util.FormatScore(perf.Avg[m]))
		}
		data.MethodRows = append(data.MethodRows, gr)
	}
	for _, m := range comparisonOrder(views) {
		mc := views.MethodComparison[m]
		name := mc.MethodDisplay
		if name == "" {
			name = cat.MethodDisplay(m)
		}
		data.Comparison = append(data.Comparison, comparisonRow{
			Method:      name,
			Color:       cat.MethodColor(m),
			Avg:         mc.AvgMDiceDisplay,
			Experiments: mc.NumExperiments,
		})
	}

	for _, ds := range views.Datasets {
		data.DatasetHeaders = append(data.DatasetHeaders, cat.DatasetDisplay(ds))
	}
	for _, row := range views.Leaderboard {
		dr, ok := views.DatasetRanks[row.ModelKey]
		if !ok || len(dr.Datasets) == 0 {
			continue
		}
		gr := gridRow{Model: row.ModelDisplay}
		for _, ds := range views.Datasets {
			cell := util.Unranked
			if avg, ok := dr.Datasets[ds]; ok {
				cell = fmt.Sprintf("%.2f", avg)
			}
			gr.Cells = append(gr.Cells, cell)
		}
		data.DatasetRows = append(data.DatasetRows, gr)
	}

	for _, ds := range sotaOrder(views) {
		s := views.DatasetSota[ds]
		display := s.DatasetDisplay
		if display == "" {
			display = cat.DatasetDisplay(ds)
		}
		data.Sota = append(data.Sota, sotaRow{
			Dataset:  display,
			Category: s.Category,
			Model:    s.Model,
			Method:   s.Method,
			Score:    s.MDiceDisplay,
			CI:       fmt.Sprintf("[%.4f, %.4f]", s.CILower, s.CIUpper),
		})
	}
	return data
}

// comparisonOrder lists compared methods in table order, then any others sorted.
func comparisonOrder(views engine.Views) []string {
	return util.OrderedKeys(views.Methods, views.MethodComparison)
}

// sotaOrder lists SOTA datasets in dataset union order, then any others sorted.
func sotaOrder(views engine.Views) []string {
	return util.OrderedKeys(views.Datasets, views.DatasetSota)
}
