package results

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseMethod validates and decodes one per-method results file. Datasets and
// models keep their document order.
func ParseMethod(method string, data []byte) (*MethodTable, error) {
	document := method + ".json"
	if err := validateDocument(document, methodFileSchema, data); err != nil {
		return nil, err
	}

	var datasets []DatasetResult
	gjson.ParseBytes(data).ForEach(func(dsKey, dsValue gjson.Result) bool {
		ds := DatasetResult{Name: dsKey.String()}
		seen := make(map[string]int)
		dsValue.ForEach(func(modelKey, modelValue gjson.Result) bool {
			model := ModelResult{Key: modelKey.String(), Metrics: parseMetrics(modelValue)}
			if i, ok := seen[model.Key]; ok {
				ds.Models[i] = model
				return true
			}
			seen[model.Key] = len(ds.Models)
			ds.Models = append(ds.Models, model)
			return true
		})
		datasets = append(datasets, ds)
		return true
	})
	return NewMethodTable(method, datasets), nil
}

// parseMetrics keeps every metric whose mean is a number. Anything else
// (null, a string, a bare count next to the metrics) is no observation.
func parseMetrics(value gjson.Result) map[string]MetricObservation {
	metrics := make(map[string]MetricObservation)
	value.ForEach(func(name, obs gjson.Result) bool {
		if !obs.IsObject() {
			return true
		}
		mean := obs.Get("mean")
		if mean.Type != gjson.Number {
			return true
		}
		metrics[name.String()] = MetricObservation{
			Mean:    mean.Float(),
			CILower: numberOrZero(obs.Get("ci_lower")),
			CIUpper: numberOrZero(obs.Get("ci_upper")),
		}
		return true
	})
	return metrics
}

func numberOrZero(v gjson.Result) float64 {
	if v.Type != gjson.Number {
		return 0
	}
	return v.Float()
}

// ParseSummary validates and decodes the summary statistics document.
func ParseSummary(data []byte) (Summary, error) {
	if err := validateDocument("summary", summaryFileSchema, data); err != nil {
		return Summary{}, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	for key, sota := range s.DatasetSota {
		sota.Dataset = key
		s.DatasetSota[key] = sota
	}
	return s, nil
}
