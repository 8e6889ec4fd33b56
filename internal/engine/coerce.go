package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var decorations = strings.NewReplacer("$", "", ",", "", "%", "", "€", "")

// Coerce converts a value pulled from an external export into a float64.
// Currency, thousands and percent decorations are stripped before parsing.
// Anything absent, empty or unparsable yields def; the result is always
// finite. Every external field goes through here before any arithmetic.
func Coerce(v any, def float64) float64 {
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		return finite(x, def)
	case float32:
		return finite(float64(x), def)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return def
		}
		return finite(f, def)
	case string:
		s := decorations.Replace(strings.TrimSpace(x))
		if s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "null") {
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return finite(f, def)
	default:
		return def
	}
}

// CoerceInt is Coerce truncated to an integer count.
func CoerceInt(v any, def int) int {
	return int(Coerce(v, float64(def)))
}

// NonNegative floors negative inputs at zero; exports occasionally carry
// negative adjustments that the data model does not admit.
func NonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

// NonNegativeInt is NonNegative for counts.
func NonNegativeInt(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func finite(f, def float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
