package household

import (
	"fmt"
	"iter"
	"slices"
)

// DefaultInvestmentGrowth is the annual growth rate of investments,
// compounded monthly. 9.6% compounded monthly is about 10% a year.
const DefaultInvestmentGrowth = 0.096

// shareTolerance absorbs the rounding of a division when all shares are sold.
var shareTolerance = Q(1e-9)

// Transaction is an entry of an investment's log.
type Transaction struct {
	Shares Quantity   `json:"shares"` // share count after the change
	Price  Money      `json:"price"`  // share price after the change
	Total  Money      `json:"total"`  // total value after the change
	Years  float64    `json:"years"`  // years from start
	Change ChangeType `json:"change"`
}

// Investment is a share based account.
//
// Money comes in by buying shares at the current share price, and goes out by
// selling shares. The share price starts at 1 and compounds every month. A
// weighted average cost basis is kept to tax the gains of each withdrawal.
type Investment struct {
	name      string
	growth    float64 // monthly growth factor
	taxFree   bool
	gainsRate float64

	price     Money
	shares    Quantity
	costBasis Money
	hasBasis  bool

	grown     bool
	lastGrown Period

	log []Transaction
}

// NewInvestment returns an empty investment growing at annualGrowth,
// compounded monthly. Gains of a taxable investment are taxed at
// DefaultCapitalGainsRate.
func NewInvestment(name string, annualGrowth float64, taxFree bool) *Investment {
	return &Investment{
		name:      name,
		growth:    1 + annualGrowth/MonthsPerYear,
		taxFree:   taxFree,
		gainsRate: DefaultCapitalGainsRate,
		price:     M(1, ""),
	}
}

// WithCapitalGainsRate sets the rate applied to gains on withdrawal.
func (i *Investment) WithCapitalGainsRate(rate float64) *Investment {
	i.gainsRate = rate
	return i
}

func (i *Investment) Name() string           { return i.name }
func (i *Investment) TaxFree() bool          { return i.taxFree }
func (i *Investment) SharePrice() Money      { return i.price }
func (i *Investment) Shares() Quantity       { return i.shares }
func (i *Investment) MonthlyGrowth() float64 { return i.growth }

// CostBasis returns the weighted average price paid per share, and false if
// nothing was ever contributed.
func (i *Investment) CostBasis() (Money, bool) { return i.costBasis, i.hasBasis }

// TotalValue returns shares × share price.
func (i *Investment) TotalValue() Money { return i.price.Mul(i.shares).exact() }

// NetValue returns what selling every share would yield after the capital
// gains tax, zero if nothing was ever contributed.
func (i *Investment) NetValue() Money {
	if !i.hasBasis {
		return Money{cur: i.price.cur}
	}
	return i.netPerShare().Mul(i.shares).exact()
}

// Transactions returns an iterator over the investment's log.
func (i *Investment) Transactions() iter.Seq[Transaction] { return slices.Values(i.log) }

// Len returns the number of logged transactions.
func (i *Investment) Len() int { return len(i.log) }

// taxRate is the effective gains rate of a withdrawal.
func (i *Investment) taxRate() float64 {
	if i.taxFree {
		return 0
	}
	return i.gainsRate
}

// netPerShare is what the household receives per share sold, after tax on the gain.
func (i *Investment) netPerShare() Money {
	g := i.taxRate()
	return i.price.Scale(1 - g).Add(i.costBasis.Scale(g))
}

func (i *Investment) record(years float64, change ChangeType) {
	i.log = append(i.log, Transaction{
		Shares: i.shares,
		Price:  i.price,
		Total:  i.TotalValue(),
		Years:  years,
		Change: change,
	})
}

// Contribute buys shares for amount at the current share price and updates
// the cost basis to the share weighted average of all purchases.
func (i *Investment) Contribute(amount Money, years float64) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: cannot contribute %v to %q", ErrInvalidAmount, amount, i.name)
	}
	if amount.IsZero() {
		return nil
	}
	if i.price.cur == "" {
		i.price.cur = amount.cur
	}
	bought := amount.DivPrice(i.price)
	total := i.shares.Add(bought)
	if !i.hasBasis || !total.IsPositive() {
		i.costBasis = i.price
		i.hasBasis = true
	} else {
		paid := i.costBasis.Mul(i.shares).Add(i.price.Mul(bought))
		i.costBasis = paid.Div(total).exact()
	}
	i.shares = total
	i.record(years, Add)
	return nil
}

// WithdrawTaxed sells enough shares for the household to receive exactly
// amount after the capital gains tax on the gain portion. It returns the tax
// withheld, always zero for a tax free investment.
//
// With g the gains rate, each share sold yields (1−g)×price + g×basis.
func (i *Investment) WithdrawTaxed(amount Money, years float64) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: cannot withdraw %v from %q", ErrInvalidAmount, amount, i.name)
	}
	if amount.IsZero() {
		return Money{}, nil
	}
	if !i.hasBasis {
		return Money{}, fmt.Errorf("%w: withdrawing from %q", ErrNoCostBasis, i.name)
	}
	sold := amount.DivPrice(i.netPerShare())
	if sold.GreaterThan(i.shares) {
		if sold.Sub(i.shares).GreaterThan(shareTolerance) {
			return Money{}, fmt.Errorf("%w: %q needs %v shares, holds %v", ErrInsufficientFunds, i.name, sold, i.shares)
		}
		sold = i.shares // division rounding when selling everything
	}
	i.shares = i.shares.Sub(sold)
	i.record(years, Withdraw)

	if i.taxFree {
		return Money{}, nil
	}
	gain := i.price.Sub(i.costBasis).Mul(sold)
	return gain.Scale(i.gainsRate).exact(), nil
}

// Grow compounds the share price by the monthly growth factor, at most once
// per period: nothing happens if growth was already applied at this period or
// a later one. It reports whether the growth was applied.
func (i *Investment) Grow(years float64) bool {
	p := PeriodOf(years)
	if i.grown && p <= i.lastGrown {
		return false
	}
	i.price = i.price.Scale(i.growth).exact()
	i.grown, i.lastGrown = true, p
	i.record(years, Grow)
	return true
}

// HasSufficientFunds reports whether a tax-aware withdrawal of amount is
// affordable. It is false until a first contribution sets the cost basis.
func (i *Investment) HasSufficientFunds(amount Money) bool {
	if !i.hasBasis {
		return false
	}
	return amount.LessThanOrEqual(i.NetValue())
}
