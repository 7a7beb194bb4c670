package constraint

import "math"

// round10 rounds x to 10 fractional digits, the contract every float
// arithmetic step must apply before it participates in a sum/product
// comparison, to avoid floating-point accumulation artefacts from leaking
// into constraint results.
func round10(x float64) float64 {
	const scale = 1e10
	return math.Round(x*scale) / scale
}

// toFloat64 converts a domain value to float64 for arithmetic constraints.
// It supports the numeric kinds a Go program is realistically going to use
// for a CSP domain; anything else is reported via the second return value so
// callers can treat a non-numeric value as "constraint not applicable"
// rather than panicking.
func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// mustFloat64 is toFloat64 for call sites that only ever see values drawn
// from a domain already validated to be numeric by the Problem layer.
func mustFloat64(v any) float64 {
	f, ok := toFloat64(v)
	if !ok {
		panic("constraint: expected numeric domain value")
	}
	return f
}

// weightOf returns multipliers[i] if present, else 1.
func weightOf(multipliers []float64, i int) float64 {
	if multipliers == nil {
		return 1
	}
	return multipliers[i]
}
