// Package review implements the vendor-statement analysis engine: it
// normalizes raw statement lines into a date-sorted timeline and runs a set of
// heuristic detection rules over it to produce balance figures and red/orange
// flags for human review.
package review

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseAmount normalizes an amount value of unknown shape into a float64.
// The accounting API is inconsistent about numeric formatting: amounts arrive
// as native numbers, as plain numeric strings, or as locale-formatted strings
// with thousands separators and decimal commas ("1.234,56"). Unparseable input
// yields 0.0 so one bad field never fails a whole review.
func ParseAmount(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0.0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return 0.0
	case string:
		return parseAmountString(v)
	default:
		return 0.0
	}
}

func parseAmountString(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "") // NBSP thousands separator
	s = strings.ReplaceAll(s, " ", "")

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	// European convention: dots group thousands, the comma is the decimal
	// marker. "63,014" and "1.234.567,89" both land here.
	if strings.Contains(s, ",") {
		eu := strings.ReplaceAll(s, ".", "")
		eu = strings.ReplaceAll(eu, ",", ".")
		if f, err := strconv.ParseFloat(eu, 64); err == nil {
			return f
		}
	}

	// Last attempt: drop all grouping characters.
	flat := strings.ReplaceAll(s, ",", "")
	flat = strings.ReplaceAll(flat, ".", "")
	if f, err := strconv.ParseFloat(flat, 64); err == nil {
		return f
	}

	return 0.0
}
