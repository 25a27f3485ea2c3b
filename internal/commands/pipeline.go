// internal/commands/pipeline.go
package densebench

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/densebench/internal/appconfig"
	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/engine"
	"github.com/mwiater/densebench/internal/logging"
	"github.com/mwiater/densebench/internal/results"
	"github.com/spf13/cobra"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	failedText  = color.New(color.FgRed).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
)

// benchmark is everything loaded and derived for one command run.
type benchmark struct {
	catalog *catalog.Catalog
	table   *results.Table
	summary results.Summary
	views   engine.Views
	failed  map[string]error
}

func requireConfig() (*appconfig.Config, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration is not loaded")
	}
	return cfg, nil
}

// addComputeFlag registers --compute, which derives the summary from the raw
// method files instead of reading the precomputed one.
func addComputeFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "compute", false, "compute the summary from raw method files instead of reading it")
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// splitLocation separates a file path or URL into its parent and base name.
func splitLocation(location string) (string, string) {
	if isURL(location) {
		i := strings.LastIndex(location, "/")
		if i < len("https://") {
			return location, ""
		}
		return location[:i], location[i+1:]
	}
	return filepath.Dir(location), filepath.Base(location)
}

func loadCatalog(cfg *appconfig.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, group := range cat.CaseCollisions() {
		logging.LogEvent("[CATALOG] datasets differ only by case: %s", strings.Join(group, ", "))
	}
	return cat, nil
}

func newLoader(cfg *appconfig.Config, cat *catalog.Catalog) *results.Loader {
	methods := cfg.Methods
	if len(methods) == 0 {
		methods = cat.MethodKeys()
	}
	timeout := cfg.RequestTimeout()
	dir, name := splitLocation(cfg.SummaryPath)
	return &results.Loader{
		Methods:       methods,
		MethodSource:  results.NewSource(cfg.DataDir, timeout),
		SummarySource: results.NewSource(dir, timeout),
		SummaryName:   name,
	}
}

// loadBenchmark fetches the inputs and builds every view. With compute set
// the summary is derived from the method files and no summary is read.
func loadBenchmark(ctx context.Context, cfg *appconfig.Config, compute bool) (*benchmark, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	loader := newLoader(cfg, cat)
	b := &benchmark{catalog: cat}

	if compute {
		table, failed, err := loader.LoadMethods(ctx)
		if err != nil {
			return nil, err
		}
		b.table, b.failed = table, failed
		b.summary = engine.ComputeSummary(table, cat)
	} else {
		res, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		b.table, b.summary, b.failed = res.Table, res.Summary, res.Failed
	}

	warnUncategorized(b.table, cat)
	b.views = engine.Build(b.table, b.summary, cat)
	logging.LogEvent("[ENGINE] built views: models=%d methods=%d datasets=%d skipped=%d",
		len(b.views.Leaderboard), len(b.views.Methods), len(b.views.Datasets), len(b.failed))
	return b, nil
}

// reportFailures lists the method files that could not be loaded.
func reportFailures(out io.Writer, failed map[string]error) {
	methods := make([]string, 0, len(failed))
	for m := range failed {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		fmt.Fprintf(out, "%s %s: %v\n", warnText("skipped"), m, failed[m])
	}
}

// warnUncategorized logs datasets that only count toward the overall rank,
// with the closest categorized name when one is near.
func warnUncategorized(table *results.Table, cat *catalog.Catalog) {
	for _, ds := range table.DatasetNames() {
		if cat.Classify(ds) != catalog.Other {
			continue
		}
		if near, ok := cat.Suggest(ds); ok {
			logging.LogEvent("[CATALOG] dataset %q is uncategorized (did you mean %q?)", ds, near)
			continue
		}
		logging.LogEvent("[CATALOG] dataset %q is uncategorized", ds)
	}
}
