package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/densebench/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ErrSummaryUnavailable is returned when the summary document cannot be
// fetched or decoded. Nothing can be rendered without it.
var ErrSummaryUnavailable = errors.New("summary statistics unavailable")

// ErrNoData is returned when not a single method file could be loaded.
var ErrNoData = errors.New("no method results could be loaded")

// Loader fetches the per-method files and the summary document.
type Loader struct {
	Methods       []string
	MethodSource  Source
	SummarySource Source
	SummaryName   string
}

// LoadResult is the outcome of a full load.
type LoadResult struct {
	Table   *Table
	Summary Summary
	Loaded  []string
	Failed  map[string]error
}

// Load fetches every method file and the summary concurrently and returns
// once all of them have finished. A failed method file leaves that method
// out of the table; a failed summary fails the whole load. Method fetches
// run on ctx, not the group context, so a failed summary does not cancel
// them; the per-method outcome is still returned alongside the error.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	var g errgroup.Group

	var tables methodBatch
	g.Go(func() error {
		tables = l.fetchMethods(ctx)
		return nil
	})

	var summary Summary
	g.Go(func() error {
		s, err := l.fetchSummary(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
		}
		summary = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return LoadResult{Loaded: tables.loaded, Failed: tables.failed}, err
	}

	return LoadResult{
		Table:   NewTable(l.Methods, tables.tables),
		Summary: summary,
		Loaded:  tables.loaded,
		Failed:  tables.failed,
	}, nil
}

// LoadMethods fetches only the per-method files. It fails only when no
// method file could be loaded at all.
func (l *Loader) LoadMethods(ctx context.Context) (*Table, map[string]error, error) {
	batch := l.fetchMethods(ctx)
	if len(batch.loaded) == 0 {
		return nil, batch.failed, fmt.Errorf("%w (%d attempted)", ErrNoData, len(l.Methods))
	}
	return NewTable(l.Methods, batch.tables), batch.failed, nil
}

type methodBatch struct {
	tables map[string]*MethodTable
	loaded []string
	failed map[string]error
}

func (l *Loader) fetchMethods(ctx context.Context) methodBatch {
	fetched := make([]*MethodTable, len(l.Methods))
	errs := make([]error, len(l.Methods))

	g, gctx := errgroup.WithContext(ctx)
	for i, method := range l.Methods {
		i, method := i, method
		g.Go(func() error {
			name := method + ".json"
			tbl, err := l.fetchMethod(gctx, method, name)
			logging.LogFetch("method", method, l.MethodSource.Location(name), err)
			if err != nil {
				errs[i] = err
				return nil
			}
			fetched[i] = tbl
			return nil
		})
	}
	_ = g.Wait()

	batch := methodBatch{
		tables: make(map[string]*MethodTable, len(l.Methods)),
		failed: make(map[string]error),
	}
	for i, method := range l.Methods {
		if errs[i] != nil {
			batch.failed[method] = errs[i]
			continue
		}
		tbl := fetched[i]
		batch.tables[tbl.Name()] = tbl
		batch.loaded = append(batch.loaded, tbl.Name())
	}
	return batch
}

func (l *Loader) fetchMethod(ctx context.Context, method, name string) (*MethodTable, error) {
	data, err := readDocument(ctx, l.MethodSource, name)
	if err != nil {
		return nil, err
	}
	return ParseMethod(method, data)
}

func (l *Loader) fetchSummary(ctx context.Context) (Summary, error) {
	src := l.SummarySource
	if src == nil {
		src = l.MethodSource
	}
	name := l.SummaryName
	if name == "" {
		name = "stats.json"
	}
	data, err := readDocument(ctx, src, name)
	logging.LogFetch("summary", name, src.Location(name), err)
	if err != nil {
		return Summary{}, err
	}
	return ParseSummary(data)
}
