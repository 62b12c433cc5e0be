package household

import "math"

// DefaultRaiseRate is the yearly salary raise used when none is configured.
const DefaultRaiseRate = 0.03

// Salary pays a fixed monthly amount, raised once a year.
type Salary struct {
	annual    Money
	raiseRate float64
	raises    int
}

// NewSalary returns a salary of annual nominal pay.
func NewSalary(annual Money, raiseRate float64) (*Salary, error) {
	if !annual.IsPositive() {
		return nil, configErrorf("salary %v must be positive", annual)
	}
	if raiseRate < 0 || math.IsNaN(raiseRate) {
		return nil, configErrorf("raise rate %v must not be negative", raiseRate)
	}
	return &Salary{annual: annual, raiseRate: raiseRate}, nil
}

// Paycheck returns the monthly pay, rounded to cents.
func (s *Salary) Paycheck() Money {
	return s.annual.Div(Q(MonthsPerYear)).Round()
}

// Raise applies the yearly raise.
func (s *Salary) Raise() {
	s.annual = s.annual.Scale(1 + s.raiseRate).Round()
	s.raises++
}

func (s *Salary) Annual() Money      { return s.annual }
func (s *Salary) RaiseRate() float64 { return s.raiseRate }
func (s *Salary) Raises() int        { return s.raises }
