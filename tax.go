package household

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// DefaultStandardDeduction is deducted from the projected annual income before
// looking up a tax bracket.
const DefaultStandardDeduction = 25000

// DefaultCapitalGainsRate is the tax rate on gains realized by a withdrawal
// from a taxable investment.
const DefaultCapitalGainsRate = 0.15

// TaxBracket is a band of annual income taxed at the same marginal rate.
//
// An income x is in the bracket when Lower < x <= Upper. Bounds can be
// infinite.
type TaxBracket struct {
	Lower float64 `yaml:"lower" toml:"lower" json:"lower"`
	Upper float64 `yaml:"upper" toml:"upper" json:"upper"`
	Rate  float64 `yaml:"rate" toml:"rate" json:"rate"`
}

// Contains reports whether income is in the bracket.
func (b TaxBracket) Contains(income float64) bool {
	return b.Lower < income && income <= b.Upper
}

// TaxBrackets is an immutable, ascending list of non overlapping brackets.
type TaxBrackets struct {
	brackets []TaxBracket
}

// NewTaxBrackets validates and returns a bracket table.
//
// Brackets must be given in ascending order and must not overlap. Gaps are
// allowed, an income falling in a gap has no rate.
func NewTaxBrackets(brackets ...TaxBracket) (TaxBrackets, error) {
	if len(brackets) == 0 {
		return TaxBrackets{}, configErrorf("tax bracket table is empty")
	}
	var errs error
	for i, b := range brackets {
		if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || !(b.Lower < b.Upper) {
			errs = errors.Join(errs, configErrorf("tax bracket %d: lower %v must be below upper %v", i, b.Lower, b.Upper))
		}
		if b.Rate < 0 || b.Rate > 1 || math.IsNaN(b.Rate) {
			errs = errors.Join(errs, configErrorf("tax bracket %d: rate %v not in [0, 1]", i, b.Rate))
		}
		if i > 0 && b.Lower < brackets[i-1].Upper {
			errs = errors.Join(errs, configErrorf("tax bracket %d overlaps or precedes bracket %d", i, i-1))
		}
	}
	if errs != nil {
		return TaxBrackets{}, errs
	}
	return TaxBrackets{brackets: slices.Clone(brackets)}, nil
}

// DefaultTaxBrackets returns the built-in table.
//
// It is gapless: incomes at or below zero (after the standard deduction) are
// not taxed, the 10% band covers up to 22,000 and the top band is open ended.
func DefaultTaxBrackets() TaxBrackets {
	inf := math.Inf(1)
	return TaxBrackets{brackets: []TaxBracket{
		{Lower: -inf, Upper: 0, Rate: 0},
		{Lower: 0, Upper: 22000, Rate: 0.10},
		{Lower: 22000, Upper: 89450, Rate: 0.12},
		{Lower: 89450, Upper: 190750, Rate: 0.22},
		{Lower: 190750, Upper: 364200, Rate: 0.24},
		{Lower: 364200, Upper: 462500, Rate: 0.32},
		{Lower: 462500, Upper: 693750, Rate: 0.35},
		{Lower: 693750, Upper: inf, Rate: 0.37},
	}}
}

// Brackets returns a copy of the table.
func (t TaxBrackets) Brackets() []TaxBracket { return slices.Clone(t.brackets) }

// Len returns the number of brackets.
func (t TaxBrackets) Len() int { return len(t.brackets) }

// RateFor returns the marginal rate for an annual income.
func (t TaxBrackets) RateFor(income float64) (float64, error) {
	for _, b := range t.brackets {
		if b.Contains(income) {
			return b.Rate, nil
		}
	}
	return 0, &InvalidIncomeError{Income: income}
}

// TaxCalculator tracks the year-to-date real income of the household, month
// by month, and projects it to a full year to find the marginal rate.
//
// Its zero value is not usable, use NewTaxCalculator.
type TaxCalculator struct {
	brackets  TaxBrackets
	deduction Money

	recorded  [MonthsPerYear]bool
	ytd       [MonthsPerYear]Money // income recorded per month
	projected [MonthsPerYear]Money // annualized income minus deduction, per month

	resets int
}

// NewTaxCalculator returns a calculator using brackets and a standard deduction.
func NewTaxCalculator(brackets TaxBrackets, deduction Money) *TaxCalculator {
	if brackets.Len() == 0 {
		brackets = DefaultTaxBrackets()
	}
	return &TaxCalculator{brackets: brackets, deduction: deduction}
}

func checkMonth(month int) error {
	if month < 1 || month > MonthsPerYear {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidMonth, month, MonthsPerYear)
	}
	return nil
}

// RecordIncome adds real income earned in month (1 to 12) and updates that
// month's projection: the year-to-date income annualized by the elapsed
// fraction of the year, minus the standard deduction.
func (c *TaxCalculator) RecordIncome(income Money, month int) error {
	if err := checkMonth(month); err != nil {
		return err
	}
	i := month - 1
	c.ytd[i] = c.ytd[i].Add(income)
	c.recorded[i] = true

	// sum / (month/12), written so that whole divisions stay exact.
	annualized := Sum(c.ytd[:]...).Mul(Q(MonthsPerYear)).Div(Q(month))
	c.projected[i] = annualized.Sub(c.deduction).exact()
	return nil
}

// Projected returns the projected taxable income computed for month.
func (c *TaxCalculator) Projected(month int) (Money, error) {
	if err := checkMonth(month); err != nil {
		return Money{}, err
	}
	if !c.recorded[month-1] {
		return Money{}, fmt.Errorf("%w: no income recorded for month %d", ErrInvalidMonth, month)
	}
	return c.projected[month-1], nil
}

// YearToDate returns the total income recorded since the last reset.
func (c *TaxCalculator) YearToDate() Money { return Sum(c.ytd[:]...) }

// RateFor returns the marginal rate of the bracket containing month's projection.
func (c *TaxCalculator) RateFor(month int) (float64, error) {
	projected, err := c.Projected(month)
	if err != nil {
		return 0, err
	}
	return c.brackets.RateFor(projected.Float())
}

// YearEndReturn compares the taxes withheld during the year with the tax owed
// on the December projection at its rate. A positive result is a refund owed
// to the household, a negative one is due.
func (c *TaxCalculator) YearEndReturn(withheld Money) (Money, error) {
	rate, err := c.RateFor(MonthsPerYear)
	if err != nil {
		return Money{}, fmt.Errorf("cannot compute year end return: %w", err)
	}
	owed := c.projected[MonthsPerYear-1].Scale(rate)
	return withheld.Sub(owed).exact(), nil
}

// Reset clears the year-to-date state. It must be called once per simulated
// year, after the year end return has been consumed.
func (c *TaxCalculator) Reset() {
	c.recorded = [MonthsPerYear]bool{}
	c.ytd = [MonthsPerYear]Money{}
	c.projected = [MonthsPerYear]Money{}
	c.resets++
}

// Resets returns how many times Reset was called.
func (c *TaxCalculator) Resets() int { return c.resets }

// Brackets returns the bracket table used by the calculator.
func (c *TaxCalculator) Brackets() TaxBrackets { return c.brackets }
