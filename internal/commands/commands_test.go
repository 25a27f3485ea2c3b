// internal/commands/commands_test.go
package densebench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/results"
)

const (
	frozenDoc = `{
  "GlaS":   {"phikon": {"Mean_Dice": {"mean": 0.81, "ci_lower": 0.80, "ci_upper": 0.82}},
             "musk":   {"Mean_Dice": {"mean": 0.77, "ci_lower": 0.76, "ci_upper": 0.78}}},
  "CoNSeP": {"phikon": {"Mean_Dice": {"mean": 0.60, "ci_lower": 0.58, "ci_upper": 0.62}}}
}`
	loraDoc = `{
  "GlaS": {"phikon": {"Mean_Dice": {"mean": 0.85, "ci_lower": 0.84, "ci_upper": 0.86}},
           "musk":   {"Mean_Dice": {"mean": 0.88, "ci_lower": 0.87, "ci_upper": 0.89}}}
}`
	summaryDoc = `{
  "model_ranks": [
    {"model_key": "phikon", "model_display": "Phikon", "avg_rank": 1.33, "avg_rank_display": "1.33", "position": 1, "total_comparisons": 3},
    {"model_key": "musk", "model_display": "MUSK", "avg_rank": 1.5, "avg_rank_display": "1.50", "position": 2, "total_comparisons": 2}
  ],
  "dataset_sota": {
    "GlaS": {"mDice": 0.88, "mDice_display": "0.8800", "model": "MUSK", "model_key": "musk", "method": "LoRA", "category": "Gland", "dataset_display": "GlaS", "ci_lower": 0.87, "ci_upper": 0.89}
  },
  "method_comparison": {
    "frozen": {"method_display": "Frozen", "avg_mDice": 0.7267, "avg_mDice_display": "0.7267"},
    "lora": {"method_display": "LoRA", "avg_mDice": 0.865, "avg_mDice_display": "0.8650"}
  }
}`
)

type fixture struct {
	data    string
	summary string
	out     string
	log     string
}

func newFixture(t *testing.T, withSummary bool) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		data:    filepath.Join(root, "Data"),
		summary: filepath.Join(root, "data_computed", "stats.json"),
		out:     filepath.Join(root, "site"),
		log:     filepath.Join(root, "densebench.log"),
	}
	if err := os.MkdirAll(f.data, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, doc := range map[string]string{"frozen.json": frozenDoc, "lora.json": loraDoc} {
		if err := os.WriteFile(filepath.Join(f.data, name), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if withSummary {
		if err := os.MkdirAll(filepath.Dir(f.summary), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(f.summary, []byte(summaryDoc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

// run executes the root command with the fixture's paths and returns its output.
func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	useConfig(t, writeTempConfig(t, `{"methods": ["frozen", "lora", "dora"]}`))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	base := []string{"--data", f.data, "--summary", f.summary, "--out", f.out, "--logFile", f.log}
	rootCmd.SetArgs(append(base, args...))
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func TestBuildCommand(t *testing.T) {
	f := newFixture(t, true)
	out, err := f.run(t, "build")
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "site written to") {
		t.Fatalf("expected success line, got %s", out)
	}
	if !strings.Contains(out, "dora") {
		t.Fatalf("expected missing dora file to be reported, got %s", out)
	}
	for _, name := range []string{"index.html", "charts.html", "views.json", "stats.json"} {
		if _, err := os.Stat(filepath.Join(f.out, name)); err != nil {
			t.Fatalf("expected %s in output: %v", name, err)
		}
	}
}

func TestBuildCommandMissingSummary(t *testing.T) {
	f := newFixture(t, false)
	out, err := f.run(t, "build")
	if err == nil {
		t.Fatalf("expected build to fail without a summary\n%s", out)
	}
	index, readErr := os.ReadFile(filepath.Join(f.out, "index.html"))
	if readErr != nil {
		t.Fatalf("expected failure page: %v", readErr)
	}
	if !strings.Contains(string(index), "Failed to load benchmark results") {
		t.Fatalf("index.html is not the failure page")
	}
}

func TestStatsCommand(t *testing.T) {
	f := newFixture(t, false)
	out, err := f.run(t, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(f.summary)
	if err != nil {
		t.Fatalf("expected summary written: %v", err)
	}
	summary, err := results.ParseSummary(data)
	if err != nil {
		t.Fatalf("written summary does not parse: %v", err)
	}
	if len(summary.ModelRanks) != 2 || summary.ModelRanks[0].ModelKey != "phikon" {
		t.Fatalf("unexpected model ranks: %+v", summary.ModelRanks)
	}
	for _, want := range []string{"Model ranks", "Phikon", "Method comparison"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestLeaderboardCommand(t *testing.T) {
	f := newFixture(t, true)
	t.Cleanup(func() { leaderboardCategory = "" })
	out, err := f.run(t, "leaderboard", "--category", "gland")
	if err != nil {
		t.Fatalf("leaderboard failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Gland leaderboard") || !strings.Contains(out, "MUSK") {
		t.Fatalf("unexpected leaderboard output:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	f := newFixture(t, true)
	path := filepath.Join(t.TempDir(), "bench.xlsx")
	t.Cleanup(func() { exportPath = "densebench.xlsx" })
	out, err := f.run(t, "export", "--xlsx", path)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected workbook: %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    catalog.Category
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "Overall", want: ""},
		{in: "nuclear", want: catalog.Nuclear},
		{in: " TISSUE ", want: catalog.Tissue},
		{in: "other", wantErr: true},
		{in: "glnd", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("parseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCategorySuggestion(t *testing.T) {
	_, err := parseCategory("glnd")
	if err == nil || !strings.Contains(err.Error(), "did you mean gland") {
		t.Fatalf("expected suggestion for glnd, got %v", err)
	}
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in, dir, name string
	}{
		{in: "data_computed/stats.json", dir: "data_computed", name: "stats.json"},
		{in: "stats.json", dir: ".", name: "stats.json"},
		{in: "https://example.org/bench/data_computed/stats.json", dir: "https://example.org/bench/data_computed", name: "stats.json"},
	}
	for _, tt := range tests {
		dir, name := splitLocation(tt.in)
		if dir != tt.dir || name != tt.name {
			t.Fatalf("splitLocation(%q) = (%q, %q), want (%q, %q)", tt.in, dir, name, tt.dir, tt.name)
		}
	}
}

func TestShowCatalogCommand(t *testing.T) {
	f := newFixture(t, false)
	out, err := f.run(t, "show", "catalog")
	if err != nil {
		t.Fatalf("show catalog failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Trans. Adapter", "GlaS, CRAG, RINGS", "Kumar, kumar"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show catalog output missing %q:\n%s", want, out)
		}
	}
}
