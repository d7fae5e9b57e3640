package user

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeSkills accepts either a comma separated string or a list of
// strings and returns the trimmed, non-empty entries in input order.
// Duplicates are kept. Non-string list entries are skipped.
func NormalizeSkills(raw any) []string {
	var parts []string

	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		parts = make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	default:
		return []string{}
	}

	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// CoerceExperience turns a JSON number or numeric string into a
// non-negative whole number of years. Anything unparseable, negative or
// NaN becomes 0. Fractions are truncated.
func CoerceExperience(raw any) int {
	var f float64

	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(f)
}
