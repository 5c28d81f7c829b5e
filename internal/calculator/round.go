package calculator

import "math"

// Tolerance is the band within which a balance counts as settled.
// Repeated cent rounding can leave dust of up to a cent; anything inside
// the band is treated as exactly zero.
const Tolerance = 0.01

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sanitize maps NaN and ±Inf to 0 so one malformed record cannot
// poison the whole balance map.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
