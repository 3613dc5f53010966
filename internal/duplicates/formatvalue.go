package duplicates

import "fmt"

// formatValueLabels maps formatValue option keys to display labels, in the
// order they are summarized.
var formatValueLabels = []struct {
	key   string
	label string
}{
	{"convertNullToValue", "Convert NULL to"},
	{"convertUndefinedToValue", "Convert undefined to"},
	{"convertTrueToValue", "Convert true to"},
	{"convertFalseToValue", "Convert false to"},
	{"caseConversionType", "Case conversion"},
	{"convertNaNToValue", "Convert NaN to"},
	{"convertEmptyToValue", "Convert empty to"},
}

// SummarizeFormatValue flattens a variable's formatValue options into a
// label -> value map for display. Option values wrapped in {value: ...}
// envelopes are unwrapped. Returns nil when nothing is set.
func SummarizeFormatValue(formatValue map[string]any) map[string]string {
	if len(formatValue) == 0 {
		return nil
	}

	out := make(map[string]string)
	for _, opt := range formatValueLabels {
		raw, ok := formatValue[opt.key]
		if !ok {
			continue
		}
		if wrapped, ok := raw.(map[string]any); ok {
			if inner, ok := wrapped["value"]; ok {
				raw = inner
			}
		}
		out[opt.label] = fmt.Sprintf("%v", raw)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
