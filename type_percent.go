package household

import "fmt"

// Percent is a rate displayed as a percentage: 12 means 12%.
type Percent float64

// PercentOf converts a fraction (0.12) into a Percent (12).
func PercentOf(fraction float64) Percent { return Percent(fraction * 100) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
