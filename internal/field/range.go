package field

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Range is an inclusive numeric boundary used for pass/warn grading.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var looseRangeKey = regexp.MustCompile(`['"]?([A-Za-z0-9_]+)['"]?:`)

// NormalizeRange canonicalizes a pass/warn boundary that authors may write
// as a structured object or as a loosely-formatted string: doubled braces
// (an MDX habit, `pass={{min:1,max:2}}` quoted verbatim), unquoted or
// single-quoted keys, even a missing closing brace. It returns nil — "not
// configured" — when either bound fails to coerce to a finite number;
// grading then silently skips that tier.
func NormalizeRange(raw any) *Range {
	switch v := raw.(type) {
	case nil:
		return nil
	case Range:
		return normalizeBounds(v.Min, v.Max, true, true)
	case *Range:
		if v == nil {
			return nil
		}
		return normalizeBounds(v.Min, v.Max, true, true)
	case map[string]any:
		min, okMin := toNumber(v["min"])
		max, okMax := toNumber(v["max"])
		return normalizeBounds(min, max, okMin, okMax)
	case string:
		cleaned := strings.TrimSpace(v)
		if strings.HasPrefix(cleaned, "{{") && strings.HasSuffix(cleaned, "}}") {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
		}
		if strings.HasPrefix(cleaned, "{") && !strings.HasSuffix(cleaned, "}") {
			cleaned += "}"
		}
		if !strings.HasPrefix(cleaned, "{") {
			cleaned = "{" + cleaned + "}"
		}
		normalized := looseRangeKey.ReplaceAllString(cleaned, `"$1":`)
		normalized = strings.ReplaceAll(normalized, "'", `"`)

		var parsed map[string]any
		if err := json.Unmarshal([]byte(normalized), &parsed); err != nil {
			return nil
		}
		return NormalizeRange(parsed)
	}
	return nil
}

func normalizeBounds(min, max float64, okMin, okMax bool) *Range {
	if !okMin || !okMax || !isFinite(min) || !isFinite(max) {
		return nil
	}
	return &Range{Min: min, Max: max}
}

// toNumber coerces the value shapes the attribute parser can produce into a
// float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
