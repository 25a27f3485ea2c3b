package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/results"
)

func mustTable(t *testing.T, methods []string, docs map[string]string) *results.Table {
	t.Helper()
	tables := make(map[string]*results.MethodTable, len(docs))
	for method, doc := range docs {
		tbl, err := results.ParseMethod(method, []byte(doc))
		if err != nil {
			t.Fatalf("parse %s: %v", method, err)
		}
		tables[method] = tbl
	}
	return results.NewTable(methods, tables)
}

func scenarioTable(t *testing.T) *results.Table {
	return mustTable(t, []string{"frozen", "lora"}, map[string]string{
		"frozen": `{"DS1": {"m1": {"Mean_Dice": {"mean": 0.9}}, "m2": {"Mean_Dice": {"mean": 0.7}}}}`,
		"lora":   `{"DS1": {"m1": {"Mean_Dice": {"mean": 0.8}}, "m2": {"Mean_Dice": {"mean": 0.95}}}}`,
	})
}

func TestRankModelsScenario(t *testing.T) {
	tbl := scenarioTable(t)

	frozen, _ := tbl.Method("frozen")
	ds, _ := frozen.Dataset("DS1")
	got := RankModels(ds.Models, results.MeanDice)
	want := []Rank{{ModelKey: "m1", Rank: 1, Mean: 0.9}, {ModelKey: "m2", Rank: 2, Mean: 0.7}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frozen ranking mismatch (-want +got):\n%s", diff)
	}

	lora, _ := tbl.Method("lora")
	ds, _ = lora.Dataset("DS1")
	got = RankModels(ds.Models, results.MeanDice)
	want = []Rank{{ModelKey: "m2", Rank: 1, Mean: 0.95}, {ModelKey: "m1", Rank: 2, Mean: 0.8}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lora ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankModelsPermutationAndTies(t *testing.T) {
	models := []results.ModelResult{
		{Key: "a", Metrics: map[string]results.MetricObservation{results.MeanDice: {Mean: 0.5}}},
		{Key: "b", Metrics: map[string]results.MetricObservation{results.MIoU: {Mean: 0.99}}},
		{Key: "c", Metrics: map[string]results.MetricObservation{results.MeanDice: {Mean: 0.8}}},
		{Key: "d", Metrics: map[string]results.MetricObservation{results.MeanDice: {Mean: 0.5}}},
	}
	got := RankModels(models, results.MeanDice)
	want := []Rank{
		{ModelKey: "c", Rank: 1, Mean: 0.8},
		{ModelKey: "a", Rank: 2, Mean: 0.5},
		{ModelKey: "d", Rank: 3, Mean: 0.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}

	empty := RankModels(models, results.MeanF1)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil ranking, got %#v", empty)
	}
}

func TestComputeDatasetRanksScenario(t *testing.T) {
	got := ComputeDatasetRanks(scenarioTable(t), nil)
	want := map[string]DatasetRanks{
		"m1": {Datasets: map[string]float64{"DS1": 1.5}},
		"m2": {Datasets: map[string]float64{"DS1": 1.5}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dataset ranks mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDatasetRanksAveragesAcrossMethods(t *testing.T) {
	tbl := mustTable(t, []string{"frozen", "lora"}, map[string]string{
		"frozen": `{"X": {"a": {"Mean_Dice": {"mean": 0.9}}, "M": {"Mean_Dice": {"mean": 0.8}}}}`,
		"lora": `{"X": {"a": {"Mean_Dice": {"mean": 0.9}}, "b": {"Mean_Dice": {"mean": 0.85}},
		          "c": {"Mean_Dice": {"mean": 0.82}}, "M": {"Mean_Dice": {"mean": 0.1}}},
		          "Y": {"a": {"Mean_Dice": {"mean": 0.3}}}}`,
	})
	got := ComputeDatasetRanks(tbl, []string{"M", "a", "ghost"})
	if r := got["M"].Datasets["X"]; r != 3.0 {
		t.Fatalf("expected M average rank 3.0 on X, got %v", r)
	}
	if _, ok := got["M"].Datasets["Y"]; ok {
		t.Fatal("expected no entry for dataset where M never appears")
	}
	if len(got["ghost"].Datasets) != 0 {
		t.Fatalf("expected empty datasets for unobserved model, got %v", got["ghost"])
	}
	if _, ok := got["b"]; ok {
		t.Fatal("expected models outside the list to be omitted")
	}
}

func TestComputeCategoryRanksSentinel(t *testing.T) {
	tbl := mustTable(t, []string{"frozen", "lora"}, map[string]string{
		"frozen": `{
			"GlaS":   {"a": {"Mean_Dice": {"mean": 0.9}}, "b": {"Mean_Dice": {"mean": 0.8}}},
			"CoNSeP": {"c": {"Mean_Dice": {"mean": 0.7}}, "a": {"Mean_Dice": {"mean": 0.6}}},
			"Mystery": {"c": {"Mean_Dice": {"mean": 0.99}}}
		}`,
		"lora": `{"GlaS": {"b": {"Mean_Dice": {"mean": 0.95}}, "a": {"Mean_Dice": {"mean": 0.5}}}}`,
	})
	got := ComputeCategoryRanks(tbl, catalog.Default(), nil)

	if avg := got["a"].Avg[catalog.Gland]; avg != 1.5 {
		t.Fatalf("expected a GlandAvg 1.5, got %v", avg)
	}
	if diff := cmp.Diff([]int{1, 2}, got["a"].Ranks[catalog.Gland]); diff != "" {
		t.Fatalf("unexpected gland ranks for a:\n%s", diff)
	}
	if avg := got["c"].Avg[catalog.Gland]; avg != UnrankedSentinel {
		t.Fatalf("expected sentinel GlandAvg for c, got %v", avg)
	}
	if _, ok := got["c"].Average(catalog.Gland); ok {
		t.Fatal("expected Average to report no observations")
	}
	if avg := got["c"].Avg[catalog.Tissue]; avg != UnrankedSentinel {
		t.Fatalf("expected sentinel TissueAvg for c, got %v", avg)
	}
	// The Other dataset counts only toward Overall.
	if got["c"].Overall != 1.0 {
		t.Fatalf("expected c overall 1.0, got %v", got["c"].Overall)
	}

	entries := []CategoryEntry{
		{ModelKey: "c", Ranks: got["c"]},
		{ModelKey: "b", Ranks: got["b"]},
		{ModelKey: "a", Ranks: got["a"]},
	}
	SortByCategory(entries, catalog.Gland)
	order := []string{entries[0].ModelKey, entries[1].ModelKey, entries[2].ModelKey}
	if diff := cmp.Diff([]string{"b", "a", "c"}, order); diff != "" {
		t.Fatalf("unexpected gland order (-want +got):\n%s", diff)
	}
}

func TestComputeMethodPerformance(t *testing.T) {
	tbl := mustTable(t, []string{"frozen", "lora", "dora"}, map[string]string{
		"frozen": `{"A": {"M": {"Mean_Dice": {"mean": 0.6}}}, "B": {"M": {"Mean_Dice": {"mean": 0.8}}}}`,
		"lora":   `{"A": {"M": {"Mean_Dice": {"mean": 0.9}}, "N": {"Mean_Dice": {"mean": 0.4}}}}`,
		"dora":   `{"A": {"N": {"mIoU": {"mean": 0.4}}}}`,
	})
	got := ComputeMethodPerformance(tbl)

	avg, ok := got["M"].Average("frozen")
	if !ok || avg < 0.6999 || avg > 0.7001 {
		t.Fatalf("expected frozenAvg 0.7 for M, got %v (ok=%v)", avg, ok)
	}
	if diff := cmp.Diff([]float64{0.6, 0.8}, got["M"].Values["frozen"]); diff != "" {
		t.Fatalf("unexpected frozen values:\n%s", diff)
	}
	if got["N"].Avg["frozen"] != nil {
		t.Fatal("expected nil frozenAvg for N")
	}
	if _, present := got["N"].Avg["dora"]; !present || got["N"].Avg["dora"] != nil {
		t.Fatal("expected explicit nil doraAvg for N (metric missing)")
	}
}

func TestComputeMethodComparison(t *testing.T) {
	tbl := mustTable(t, []string{"frozen", "dora"}, map[string]string{
		"frozen": `{"A": {"M": {"Mean_Dice": {"mean": 0.5}}, "N": {"Mean_Dice": {"mean": 0.7}}}}`,
		"dora":   `{"A": {"N": {"mIoU": {"mean": 0.4}}}}`,
	})
	got := ComputeMethodComparison(tbl, catalog.Default())
	want := map[string]results.MethodComparison{
		"frozen": {MethodDisplay: "Frozen", AvgMDice: 0.6, AvgMDiceDisplay: "0.6000", NumExperiments: 2},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(approxEqual)); diff != "" {
		t.Fatalf("method comparison mismatch (-want +got):\n%s", diff)
	}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestSelectBestFirstMaximumWins(t *testing.T) {
	tbl := mustTable(t, []string{"frozen", "lora"}, map[string]string{
		"frozen": `{"GlaS": {"x": {"Mean_Dice": {"mean": 0.8}}, "y": {"Mean_Dice": {"mean": 0.9, "ci_lower": 0.88, "ci_upper": 0.92}}}}`,
		"lora":   `{"GlaS": {"z": {"Mean_Dice": {"mean": 0.9}}}}`,
	})
	cat := catalog.Default()
	for i := 0; i < 5; i++ {
		best, ok := SelectBest(tbl, cat, Scope{Dataset: "GlaS"})
		if !ok {
			t.Fatal("expected a best result")
		}
		if best.ModelKey != "y" || best.MethodKey != "frozen" {
			t.Fatalf("expected first maximum (frozen, y), got (%s, %s)", best.MethodKey, best.ModelKey)
		}
		if best.MDiceDisplay != "0.9000" || best.Category != "Gland" || best.Method != "Frozen" || best.CILower != 0.88 {
			t.Fatalf("unexpected record: %+v", best)
		}
	}

	if _, ok := SelectBest(tbl, cat, Scope{Dataset: "CRAG"}); ok {
		t.Fatal("expected no result for empty scope")
	}
	if best, ok := BestForModel(tbl, cat, "z"); !ok || best.MethodKey != "lora" {
		t.Fatalf("unexpected best for model z: %+v", best)
	}
	if _, ok := SelectBest(tbl, cat, Scope{Metric: results.MIoU}); ok {
		t.Fatal("expected no result for metric without observations")
	}
}

func TestComputeModelRanks(t *testing.T) {
	got := ComputeModelRanks(scenarioTable(t), catalog.Default())
	if len(got) != 2 {
		t.Fatalf("expected 2 models, got %d", len(got))
	}
	for i, r := range got {
		if r.Position != i+1 || r.AvgRank != 1.5 || r.TotalComparisons != 2 || r.AvgRankDisplay != "1.50" {
			t.Fatalf("unexpected model rank %d: %+v", i, r)
		}
	}
	if got[0].ModelKey != "m1" {
		t.Fatalf("expected tie to keep first-seen order, got %s first", got[0].ModelKey)
	}
}

func TestBuildIsIdempotentAndDegradesOnMissingModels(t *testing.T) {
	tbl := scenarioTable(t)
	cat := catalog.Default()
	summary := results.Summary{
		ModelRanks: []results.ModelRank{
			{ModelKey: "ghost", ModelDisplay: "Ghost", AvgRank: 2, Position: 2},
			{ModelKey: "m2", ModelDisplay: "Model Two", AvgRank: 1, Position: 1},
		},
		DatasetSota:      map[string]results.DatasetSota{},
		MethodComparison: map[string]results.MethodComparison{},
	}

	first := Build(tbl, summary, cat)
	second := Build(tbl, summary, cat)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Build is not idempotent (-first +second):\n%s", diff)
	}

	keys := make([]string, len(first.Leaderboard))
	for i, r := range first.Leaderboard {
		keys[i] = r.ModelKey
	}
	if diff := cmp.Diff([]string{"m2", "ghost", "m1"}, keys); diff != "" {
		t.Fatalf("unexpected leaderboard order (-want +got):\n%s", diff)
	}
	if first.Leaderboard[2].Ranked {
		t.Fatal("expected raw-only model to be unranked")
	}
	if first.Leaderboard[1].Best != nil {
		t.Fatal("expected summary-only model to have no best result")
	}
	if first.Leaderboard[1].Categories.Avg[catalog.Gland] != UnrankedSentinel {
		t.Fatal("expected summary-only model to carry sentinel category ranks")
	}
	if first.Leaderboard[0].Best == nil || first.Leaderboard[0].Best.MethodKey != "lora" {
		t.Fatalf("expected m2 best under lora, got %+v", first.Leaderboard[0].Best)
	}
}
