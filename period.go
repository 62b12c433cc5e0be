package household

import (
	"fmt"
	"math"
)

// MonthsPerYear is the number of simulated periods in a year.
const MonthsPerYear = 12

// Period counts the whole months elapsed since the start of a simulation.
//
// The k-th simulated month happens at years_from_start = k/12, so the first
// month is period 1 and period 12 closes the first year. Period 0 is the
// start itself, when seed balances are contributed.
type Period int

// PeriodOf converts a time expressed in years from the start into a Period.
// It rounds to the nearest month so that k/12 always maps back to k.
func PeriodOf(years float64) Period {
	return Period(math.Round(years * MonthsPerYear))
}

// Years returns the time of the period in years from the start.
func (p Period) Years() float64 { return float64(p) / MonthsPerYear }

// Month returns the month of the year (1 to 12), or 0 for the start.
func (p Period) Month() int {
	if p <= 0 {
		return 0
	}
	return (int(p)-1)%MonthsPerYear + 1
}

// YearIndex returns the number of whole years elapsed before the period's month.
func (p Period) YearIndex() int {
	if p <= 0 {
		return 0
	}
	return (int(p) - 1) / MonthsPerYear
}

// IsYearEnd reports whether the period is the last month of a year.
func (p Period) IsYearEnd() bool { return p.Month() == MonthsPerYear }

func (p Period) String() string {
	if p <= 0 {
		return "start"
	}
	return fmt.Sprintf("Y%d-M%02d", p.YearIndex()+1, p.Month())
}
