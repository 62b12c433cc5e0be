package household

import (
	"errors"
	"math"
)

// SpendingStrategy splits a net paycheck.
//
// BaseSpending and RetirementSaving are fractions of the paycheck, the rest is
// disposable income. DisposableSpend and DisposableGive are fractions of the
// disposable income, the rest of it is invested.
type SpendingStrategy struct {
	BaseSpending     float64 `yaml:"base_spending" toml:"base_spending" json:"baseSpending"`
	RetirementSaving float64 `yaml:"retirement_saving" toml:"retirement_saving" json:"retirementSaving"`
	DisposableSpend  float64 `yaml:"disposable_spend" toml:"disposable_spend" json:"disposableSpend"`
	DisposableGive   float64 `yaml:"disposable_give" toml:"disposable_give" json:"disposableGive"`
}

// Allocation is a paycheck split by a SpendingStrategy. Its parts add up to
// the paycheck.
type Allocation struct {
	Base       Money
	Retirement Money
	Spend      Money
	Invest     Money
	Give       Money
}

// Total returns the sum of all parts.
func (a Allocation) Total() Money {
	return Sum(a.Base, a.Retirement, a.Spend, a.Invest, a.Give)
}

// NewSpendingStrategy returns a validated strategy.
func NewSpendingStrategy(base, retirement, spend, give float64) (SpendingStrategy, error) {
	s := SpendingStrategy{
		BaseSpending:     base,
		RetirementSaving: retirement,
		DisposableSpend:  spend,
		DisposableGive:   give,
	}
	return s, s.Validate()
}

// fraction checks that f is in [0, 1].
func fraction(name string, f float64) error {
	if f < 0 || f > 1 || math.IsNaN(f) {
		return configErrorf("%s %v not in [0, 1]", name, f)
	}
	return nil
}

// Validate checks that every fraction is in [0, 1] and that both splits sum
// to at most 1.
func (s SpendingStrategy) Validate() error {
	errs := errors.Join(
		fraction("base spending", s.BaseSpending),
		fraction("retirement saving", s.RetirementSaving),
		fraction("disposable spend", s.DisposableSpend),
		fraction("disposable give", s.DisposableGive),
	)
	if sum := s.BaseSpending + s.RetirementSaving; sum > 1 {
		errs = errors.Join(errs, configErrorf("base spending and retirement saving sum to %v", sum))
	}
	if sum := s.DisposableSpend + s.DisposableGive; sum > 1 {
		errs = errors.Join(errs, configErrorf("disposable spend and give sum to %v", sum))
	}
	return errs
}

// Disposable returns the fraction of the paycheck left after base spending
// and retirement saving.
func (s SpendingStrategy) Disposable() float64 { return 1 - s.BaseSpending - s.RetirementSaving }

// DisposableInvest returns the fraction of the disposable income invested.
func (s SpendingStrategy) DisposableInvest() float64 { return 1 - s.DisposableSpend - s.DisposableGive }

// Allocate splits a paycheck. The invested part takes the rounding residue so
// that the parts sum exactly to the paycheck.
func (s SpendingStrategy) Allocate(paycheck Money) Allocation {
	disposable := s.Disposable()
	a := Allocation{
		Base:       paycheck.Scale(s.BaseSpending).exact(),
		Retirement: paycheck.Scale(s.RetirementSaving).exact(),
		Spend:      paycheck.Scale(disposable * s.DisposableSpend).exact(),
		Give:       paycheck.Scale(disposable * s.DisposableGive).exact(),
	}
	a.Invest = paycheck.Sub(Sum(a.Base, a.Retirement, a.Spend, a.Give))
	return a
}

// GenerosityStrategy drives the giving of the household.
//
// A StraightPercent of the disposable give is given right away, the rest is
// invested in the giving fund. The fund is drawn down for giving at
// DrawdownRate a year. LegacyPercent of the fund is given as a legacy.
type GenerosityStrategy struct {
	StraightPercent float64 `yaml:"straight_percent" toml:"straight_percent" json:"straightPercent"`
	DrawdownRate    float64 `yaml:"drawdown_rate" toml:"drawdown_rate" json:"drawdownRate"`
	LegacyPercent   float64 `yaml:"legacy_percent" toml:"legacy_percent" json:"legacyPercent"`
}

// NewGenerosityStrategy returns a validated strategy.
func NewGenerosityStrategy(straight, drawdown, legacy float64) (GenerosityStrategy, error) {
	g := GenerosityStrategy{StraightPercent: straight, DrawdownRate: drawdown, LegacyPercent: legacy}
	return g, g.Validate()
}

func (g GenerosityStrategy) Validate() error {
	return errors.Join(
		fraction("straight giving", g.StraightPercent),
		fraction("drawdown rate", g.DrawdownRate),
		fraction("legacy giving", g.LegacyPercent),
	)
}

// InvestedPercent returns the fraction of the disposable give that is invested.
func (g GenerosityStrategy) InvestedPercent() float64 { return 1 - g.StraightPercent }

// MonthlyDrawdownRate returns the fraction of the giving fund drawn each month.
func (g GenerosityStrategy) MonthlyDrawdownRate() float64 { return g.DrawdownRate / MonthsPerYear }

// Split returns the straight and the invested parts of give.
func (g GenerosityStrategy) Split(give Money) (straight, invested Money) {
	straight = give.Scale(g.StraightPercent).exact()
	return straight, give.Sub(straight)
}
