package results

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// methodFileSchema only fixes the dataset -> model -> metrics nesting.
// Individual metric entries are checked while parsing, so one malformed
// metric drops that observation instead of the whole file.
var methodFileSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type": "object",
		},
	},
}

var summaryFileSchema = map[string]any{
	"type":     "object",
	"required": []string{"model_ranks", "dataset_sota", "method_comparison"},
	"properties": map[string]any{
		"model_ranks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"model_key", "avg_rank"},
				"properties": map[string]any{
					"model_key":         map[string]any{"type": "string"},
					"model_display":     map[string]any{"type": "string"},
					"avg_rank":          map[string]any{"type": "number"},
					"avg_rank_display":  map[string]any{"type": "string"},
					"position":          map[string]any{"type": "integer"},
					"total_comparisons": map[string]any{"type": "integer"},
				},
			},
		},
		"dataset_sota": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []string{"mDice", "model", "method"},
				"properties": map[string]any{
					"mDice":    map[string]any{"type": "number"},
					"ci_lower": map[string]any{"type": []string{"number", "null"}},
					"ci_upper": map[string]any{"type": []string{"number", "null"}},
				},
			},
		},
		"method_comparison": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []string{"avg_mDice"},
				"properties": map[string]any{
					"avg_mDice": map[string]any{"type": "number"},
				},
			},
		},
	},
}

// SchemaError lists every schema violation found in one document.
type SchemaError struct {
	Document   string
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s failed schema validation: %s", e.Document, strings.Join(e.Violations, ", "))
}

func validateDocument(document string, schema map[string]any, data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%s: schema validation error: %w", document, err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return &SchemaError{Document: document, Violations: violations}
}
