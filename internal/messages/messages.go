// Package messages renders the fixed English texts attached to validation
// issues. Templates are keyed by issue code; data supplies the placeholders.
package messages

import "strings"

// Message variants for codes whose wording depends on which params are set.
const (
	VariantBetween = "between"
	VariantAtLeast = "at_least"
	VariantAtMost  = "at_most"
	VariantNumeric = "numeric"
)

// T renders the message for code. Unknown codes render as the code itself.
func T(code string, data map[string]string) string {
	var tpl string
	switch code {
	case "required":
		tpl = "Required Column '{column}' not found in data"
	case "invalid_type":
		if data["variant"] == VariantNumeric {
			tpl = "Column '{column}' has incorrect type. Expected numeric, got {got}."
		} else {
			tpl = "Column '{column}' has incorrect type. Expected {expected}, got {got}."
		}
	case "missing_values":
		tpl = "Column '{column}' contains missing values."
	case "out_of_range":
		switch data["variant"] {
		case VariantAtLeast:
			tpl = "Values in '{column}' must be >= {min}."
		case VariantAtMost:
			tpl = "Values in '{column}' must be <= {max}."
		default:
			tpl = "Values in '{column}' must be between {min} and {max}."
		}
	default:
		return code
	}
	return expand(tpl, data)
}

func expand(tpl string, data map[string]string) string {
	if len(data) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
