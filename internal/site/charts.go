// internal/site/charts.go
package site

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/engine"
)

// missing is how echarts marks an absent bar.
const missing = "-"

// renderCharts builds the charts page: method comparison, per-category
// average ranks and per-model method performance.
func renderCharts(views engine.Views, cat *catalog.Catalog, title string) ([]byte, error) {
	page := components.NewPage()
	page.AddCharts(
		methodComparisonChart(views, cat, title),
		categoryRankChart(views),
		methodPerformanceChart(views, cat),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func methodComparisonChart(views engine.Views, cat *catalog.Catalog, title string) *charts.Bar {
	var x []string
	var y []opts.BarData
	for _, m := range comparisonOrder(views) {
		mc := views.MethodComparison[m]
		x = append(x, cat.MethodDisplay(m))
		y = append(y, opts.BarData{
			Name:      cat.MethodDisplay(m),
			Value:     mc.AvgMDice,
			ItemStyle: &opts.ItemStyle{Color: cat.MethodColor(m)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Method comparison", Subtitle: "average mDice over all experiments"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("avg mDice", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func categoryRankChart(views engine.Views) *charts.Bar {
	x := make([]string, 0, len(views.Leaderboard))
	for _, row := range views.Leaderboard {
		x = append(x, row.ModelDisplay)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{Title: "Average rank by category", Subtitle: "lower is better"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
	)
	bar.SetXAxis(x)
	for _, c := range catalog.NamedCategories {
		y := make([]opts.BarData, 0, len(views.Leaderboard))
		for _, row := range views.Leaderboard {
			if avg, ok := row.Categories.Average(c); ok {
				y = append(y, opts.BarData{Value: avg})
				continue
			}
			y = append(y, opts.BarData{Value: missing})
		}
		bar.AddSeries(string(c), y)
	}
	return bar
}

func methodPerformanceChart(views engine.Views, cat *catalog.Catalog) *charts.Bar {
	x := make([]string, 0, len(views.Leaderboard))
	for _, row := range views.Leaderboard {
		x = append(x, row.ModelDisplay)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{Title: "Average mDice per method"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
	)
	bar.SetXAxis(x)
	for _, m := range views.Methods {
		y := make([]opts.BarData, 0, len(views.Leaderboard))
		for _, row := range views.Leaderboard {
			if avg, ok := views.MethodPerformance[row.ModelKey].Average(m); ok {
				y = append(y, opts.BarData{Value: avg})
				continue
			}
			y = append(y, opts.BarData{Value: missing})
		}
		bar.AddSeries(cat.MethodDisplay(m), y,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: cat.MethodColor(m)}),
		)
	}
	return bar
}
