package rates

import "github.com/shopspring/decimal"

// ToBase converts an amount entered in a target currency into the base
// (room) currency: amount / rate, rounded to cents. The division is done
// in decimal so the stored share amounts do not inherit binary-float error
// on top of the unavoidable cent rounding.
//
// A zero or negative rate is treated as 1 (same-currency entry).
func ToBase(amount, rate float64) float64 {
	if rate <= 0 {
		rate = 1
	}
	result := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(rate)).
		Round(2)
	f, _ := result.Float64()
	return f
}

// Portion computes amount * percent / 100 in the base currency, rounded to
// cents, for percent-distributed expense shares.
func Portion(amount, percent float64) float64 {
	result := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := result.Float64()
	return f
}

// EqualShare computes amount / n in the base currency, rounded to cents.
func EqualShare(amount float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	result := decimal.NewFromFloat(amount).
		Div(decimal.NewFromInt(int64(n))).
		Round(2)
	f, _ := result.Float64()
	return f
}
