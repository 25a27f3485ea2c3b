// internal/util/util.go
package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

// Unranked is what a sentinel rank or a missing score displays as.
const Unranked = "-"

// WriteFile writes data to a file with 0o644 permissions, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return WriteFile(path, append(data, '\n'))
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// FormatRank renders an average rank with two decimals. Values at or above
// sentinel display as Unranked.
func FormatRank(avg, sentinel float64) string {
	if avg >= sentinel {
		return Unranked
	}
	return fmt.Sprintf("%.2f", avg)
}

// FormatScore renders a metric mean with four decimals, or Unranked for nil.
func FormatScore(v *float64) string {
	if v == nil {
		return Unranked
	}
	return fmt.Sprintf("%.4f", *v)
}

// OrderedKeys returns the keys of m that appear in order, in that order,
// followed by the remaining keys sorted.
func OrderedKeys[V any](order []string, m map[string]V) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
