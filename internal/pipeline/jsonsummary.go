package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	summaryMaxDepth     = 5
	summaryMaxKeys      = 20
	summaryMaxStringLen = 100
)

// analyzeJSON attempts a strict parse and, on success, summarizes the value's
// shape. The summary is for inspection, not round-trip reconstruction.
func analyzeJSON(raw string) *JSONAnalysis {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return &JSONAnalysis{Valid: false, Error: err.Error()}
	}

	return &JSONAnalysis{
		Valid:     true,
		Structure: summarizeValue(value, 0),
	}
}

// summarizeValue builds a depth- and breadth-capped description of a decoded
// JSON value. Object keys are emitted in sorted order so the key cap selects
// a deterministic subset.
func summarizeValue(value any, depth int) any {
	if depth >= summaryMaxDepth {
		return "[max depth reached]"
	}

	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		summary := make(map[string]any, len(keys))
		for i, k := range keys {
			if i == summaryMaxKeys {
				summary[fmt.Sprintf("... %d more keys", len(keys)-summaryMaxKeys)] = "truncated"
				break
			}
			summary[k] = summarizeValue(v[k], depth+1)
		}
		return summary

	case []any:
		summary := map[string]any{
			"type":   "array",
			"length": len(v),
		}
		if len(v) > 0 {
			summary["first"] = summarizeValue(v[0], depth+1)
		}
		return summary

	case string:
		if len([]rune(v)) > summaryMaxStringLen {
			return string([]rune(v)[:summaryMaxStringLen]) + "..."
		}
		return v

	default:
		// Numbers, booleans, and null pass through untouched.
		return v
	}
}
