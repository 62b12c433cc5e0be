package household

import "math"

// DefaultInflationRate is the annual inflation rate used when none is configured.
const DefaultInflationRate = 0.04

// InflationAdjuster converts amounts between nominal and real terms given the
// number of years elapsed. It has no state besides its annual rate.
type InflationAdjuster struct {
	rate float64
}

// NewInflationAdjuster returns an adjuster for an annual rate in [0, 1).
func NewInflationAdjuster(rate float64) (InflationAdjuster, error) {
	if rate < 0 || rate >= 1 || math.IsNaN(rate) {
		return InflationAdjuster{}, configErrorf("inflation rate %v not in [0, 1)", rate)
	}
	return InflationAdjuster{rate: rate}, nil
}

// Rate returns the annual inflation rate.
func (a InflationAdjuster) Rate() float64 { return a.rate }

// ReverseAdjust returns amount × (1 − r)^years, the real value today of an
// amount received years from now.
//
// This is a deflation by (1 − r), not the inverse of ForwardAdjust: the
// round trip loses a factor (1 − r²)^years. Use Discount for the exact inverse.
func (a InflationAdjuster) ReverseAdjust(amount Money, years float64) Money {
	return amount.Scale(math.Pow(1-a.rate, years))
}

// Nominal is the inverse of ReverseAdjust.
func (a InflationAdjuster) Nominal(amount Money, years float64) Money {
	return amount.Scale(1 / math.Pow(1-a.rate, years))
}

// ForwardAdjust returns amount × (1 + r)^years, the price years from now of
// something costing amount today.
func (a InflationAdjuster) ForwardAdjust(amount Money, years float64) Money {
	return amount.Scale(math.Pow(1+a.rate, years))
}

// Discount is the inverse of ForwardAdjust.
func (a InflationAdjuster) Discount(amount Money, years float64) Money {
	return amount.Scale(1 / math.Pow(1+a.rate, years))
}
