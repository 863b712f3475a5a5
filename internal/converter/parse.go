package converter

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// matches a leading "DDR5-", "LPDDR4X " style generation token
var ddrGeneration = regexp.MustCompile(`(?i)^\s*(lp)?ddr\d*x?[\s-]*`)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads a numeric value the way catalog data carries it: native
// numbers, json.Number, or strings with a numeric prefix ("49.99", "650 W").
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch vv := v.(type) {
	case float64:
		f = vv
	case float32:
		f = float64(vv)
	case int:
		f = float64(vv)
	case int32:
		f = float64(vv)
	case int64:
		f = float64(vv)
	case json.Number:
		n, err := vv.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		m := leadingFloat.FindString(strings.TrimSpace(vv))
		if m == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseLeadingInt parses the run of digits at the start of s, ignoring
// surrounding whitespace: "2x8GB" -> 2, " 16 GB" -> 16.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DigitsOnly drops every non-digit rune and parses what remains:
// "3200MHz" -> 3200.
func DigitsOnly(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseModuleCount reads a memory kit's module count from a number, a
// "<n>x<size>" string, or a [count, sizeGB] pair.
func ParseModuleCount(v any) (int, bool) {
	switch vv := v.(type) {
	case string:
		head, _, _ := strings.Cut(strings.ToLower(vv), "x")
		n, ok := ParseLeadingInt(head)
		if !ok || n <= 0 {
			return 0, false
		}
		return n, true
	case []any:
		if len(vv) == 0 {
			return 0, false
		}
		return ParseModuleCount(vv[0])
	default:
		f, ok := ParseNumber(v)
		if !ok || f < 1 {
			return 0, false
		}
		return int(f), true
	}
}

// ParseSpeedMHz reads a memory speed from a number, a string such as
// "3200MHz" or "DDR5-6000", or a [generation, mhz] pair.
func ParseSpeedMHz(v any) (int, bool) {
	switch vv := v.(type) {
	case string:
		n, ok := DigitsOnly(ddrGeneration.ReplaceAllString(vv, ""))
		if !ok || n <= 0 {
			return 0, false
		}
		return n, true
	case []any:
		if len(vv) == 0 {
			return 0, false
		}
		return ParseSpeedMHz(vv[len(vv)-1])
	default:
		f, ok := ParseNumber(v)
		if !ok || f <= 0 {
			return 0, false
		}
		return int(f), true
	}
}
