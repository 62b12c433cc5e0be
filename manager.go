package household

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"
)

// ledgers is everything a simulated month changes. It is copied to
// checkpoint a month: logs are append-only, so only the assets, which are
// updated in place, need a deep copy.
type ledgers struct {
	salary     Salary
	tax        TaxCalculator
	retirement Investment
	giving     Investment
	savings    Investment
	assets     []Asset

	givingTracker   SpendingTracker
	spendingTracker SpendingTracker

	withheld [MonthsPerYear]Money // real terms
	income   [MonthsPerYear]Money // nominal, tax return excluded
	net      Money                // year to date
	refund   Money                // nominal tax return of the year
	gainsTax Money                // year to date

	last      Period
	summaries []YearSummary
}

func (l *ledgers) checkpoint() ledgers {
	saved := *l
	saved.assets = slices.Clone(l.assets)
	return saved
}

// PortfolioManager simulates a household month by month.
//
// Every month the household gets paid, allocates its net income, gives,
// saves for retirement, buys assets when it can afford them and lets its
// investments grow. Each twelfth month closes the year: the tax calculator
// is reset, the salary raised and a YearSummary appended.
type PortfolioManager struct {
	scenario   Scenario
	spending   SpendingStrategy
	generosity GenerosityStrategy
	inflation  InflationAdjuster
	assetPrice Money

	st ledgers

	sink   Sink
	logger *zap.Logger
}

// NewPortfolioManager returns a manager for a validated scenario. Seeds are
// contributed at time zero. The sink receives each yearly summary, it can be
// nil, so can the logger.
func NewPortfolioManager(sc Scenario, sink Sink, logger *zap.Logger) (*PortfolioManager, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	inflation, err := NewInflationAdjuster(sc.Economy.Inflation)
	if err != nil {
		return nil, err
	}
	brackets, err := sc.Brackets()
	if err != nil {
		return nil, err
	}
	salary, err := NewSalary(sc.money(sc.Salary), sc.Raise)
	if err != nil {
		return nil, err
	}
	growth := sc.Economy.InvestmentGrowth
	gains := sc.Economy.CapitalGainsRate

	m := &PortfolioManager{
		scenario:   sc,
		spending:   sc.Spending,
		generosity: sc.Generosity,
		inflation:  inflation,
		assetPrice: sc.money(sc.Asset.Price),
		sink:       sink,
		logger:     logger.With(zap.String("scenario", sc.Name)),
	}
	m.st.salary = *salary
	m.st.tax = *NewTaxCalculator(brackets, sc.money(sc.Economy.StandardDeduction))
	m.st.retirement = *NewInvestment("Retirement", growth, true).WithCapitalGainsRate(gains)
	m.st.giving = *NewInvestment("Giving", growth, false).WithCapitalGainsRate(gains)
	m.st.savings = *NewInvestment("Asset Savings", growth, false).WithCapitalGainsRate(gains)

	if err := m.st.retirement.Contribute(sc.money(sc.Seeds.Retirement), 0); err != nil {
		return nil, err
	}
	if err := m.st.giving.Contribute(sc.money(sc.Seeds.Giving), 0); err != nil {
		return nil, err
	}
	return m, nil
}

// SimulateMonth advances the household to years from start, which must map
// to the period right after the last simulated one. Skipping a month would
// leave a year unclosed.
//
// A month is atomic: if any step fails, the manager is left as it was before
// the call. The yearly summary, if any, is sent to the sink after the month
// is committed; a sink error is returned but the month is kept.
func (m *PortfolioManager) SimulateMonth(years float64) error {
	p := PeriodOf(years)
	if p < 1 {
		return fmt.Errorf("%w: %v years is before the first month", ErrInvalidPeriod, years)
	}
	if p != m.st.last+1 {
		return fmt.Errorf("%w: %v does not follow %v", ErrInvalidPeriod, p, m.st.last)
	}

	saved := m.st.checkpoint()
	summary, err := m.month(p)
	if err != nil {
		m.st = saved
		return fmt.Errorf("simulating %v: %w", p, err)
	}
	if summary != nil && m.sink != nil {
		if err := m.sink.Append(*summary); err != nil {
			return fmt.Errorf("reporting year %d: %w", summary.Year, err)
		}
	}
	return nil
}

// Run simulates the next months, one period apart, after the last simulated
// month.
func (m *PortfolioManager) Run(months int) error {
	start := m.st.last
	for k := 1; k <= months; k++ {
		if err := m.SimulateMonth((start + Period(k)).Years()); err != nil {
			return err
		}
	}
	return nil
}

// month runs the steps of a month on the ledgers, and returns the year
// summary when it closes a year.
func (m *PortfolioManager) month(p Period) (*YearSummary, error) {
	st := &m.st
	years := p.Years()
	month := p.Month()

	// get paid
	gross := st.salary.Paycheck()
	for i := range st.assets {
		d, err := st.assets[i].PayDividend()
		if err != nil {
			return nil, err
		}
		gross = gross.Add(d)
	}
	elapsed := float64(p.YearIndex())
	realIncome := m.inflation.ReverseAdjust(gross, elapsed).Round()
	if err := st.tax.RecordIncome(realIncome, month); err != nil {
		return nil, err
	}
	rate, err := st.tax.RateFor(month)
	if err != nil {
		return nil, err
	}
	st.withheld[month-1] = st.withheld[month-1].Add(realIncome.Scale(rate).exact())
	st.income[month-1] = st.income[month-1].Add(gross)
	if p.IsYearEnd() {
		ret, err := st.tax.YearEndReturn(Sum(st.withheld[:]...))
		if err != nil {
			return nil, err
		}
		st.refund = m.inflation.Nominal(ret, elapsed).Round()
		gross = gross.Add(st.refund)
	}
	net := gross.Scale(1 - rate).Round()
	st.net = st.net.Add(net)
	m.logger.Debug("paid",
		zap.Stringer("period", p),
		zap.Stringer("income", gross),
		zap.Stringer("real", realIncome),
		zap.Float64("rate", rate),
	)

	// allocate
	alloc := m.spending.Allocate(net)
	if err := st.spendingTracker.Add(alloc.Base.Add(alloc.Spend), years); err != nil {
		return nil, err
	}

	// giving
	straight, invested := m.generosity.Split(alloc.Give)
	drawdown := st.giving.TotalValue().Scale(m.generosity.MonthlyDrawdownRate()).Round()
	if drawdown.IsPositive() {
		tax, err := st.giving.WithdrawTaxed(drawdown, years)
		if err != nil {
			return nil, fmt.Errorf("drawing down: %w", err)
		}
		st.gainsTax = st.gainsTax.Add(tax)
	}
	if err := st.giving.Contribute(invested, years); err != nil {
		return nil, err
	}
	if err := st.givingTracker.Add(straight, years); err != nil {
		return nil, err
	}
	if err := st.givingTracker.Add(drawdown, years); err != nil {
		return nil, err
	}

	// retirement
	if err := st.retirement.Contribute(alloc.Retirement, years); err != nil {
		return nil, err
	}

	// assets
	if err := m.buyAssets(alloc.Invest, p); err != nil {
		return nil, fmt.Errorf("buying assets: %w", err)
	}

	// grow
	st.retirement.Grow(years)
	st.giving.Grow(years)
	st.savings.Grow(years)
	for i := range st.assets {
		st.assets[i].Grow(years)
	}

	st.last = p
	if !p.IsYearEnd() {
		return nil, nil
	}
	s := m.closeYear(p)
	return &s, nil
}

// AssetPrice returns the price of one asset unit at p, the policy price
// projected by inflation.
func (m *PortfolioManager) AssetPrice(p Period) Money {
	return m.inflation.ForwardAdjust(m.assetPrice, p.Years()).Round()
}

// buyAssets spends budget on as many whole asset units as it covers, then
// buys one more if the asset savings can pay for the shortfall. What is left
// of the budget is saved.
func (m *PortfolioManager) buyAssets(budget Money, p Period) error {
	st := &m.st
	years := p.Years()
	price := m.AssetPrice(p)

	units := 0
	if budget.GreaterThanOrEqual(price) {
		units = budget.DivPrice(price).Whole()
		budget = budget.Sub(price.Mul(Q(units)))
	}
	if shortfall := price.Sub(budget); st.savings.HasSufficientFunds(shortfall) {
		tax, err := st.savings.WithdrawTaxed(shortfall, years)
		if err != nil {
			return err
		}
		st.gainsTax = st.gainsTax.Add(tax)
		budget = budget.Sub(budget)
		units++
	}
	if err := st.savings.Contribute(budget, years); err != nil {
		return err
	}

	policy := m.scenario.Asset
	for range units {
		name := fmt.Sprintf("Asset %d", len(st.assets)+1)
		a := NewAsset(name, price, policy.Growth, years).WithDividend(policy.Dividend, policy.Expenses)
		st.assets = append(st.assets, *a)
		m.logger.Info("asset bought", zap.String("asset", name), zap.Stringer("price", price), zap.Stringer("period", p))
	}
	return nil
}

// closeYear builds the summary of the year ending at p and resets the year
// to date state.
func (m *PortfolioManager) closeYear(p Period) YearSummary {
	st := &m.st
	var assetValue Money
	for _, a := range st.assets {
		assetValue = assetValue.Add(a.Value())
	}
	s := YearSummary{
		Year:               p.YearIndex() + 1,
		Salary:             st.salary.Annual(),
		Income:             Sum(st.income[:]...).Add(st.refund),
		NetIncome:          st.net,
		TaxesWithheld:      Sum(st.withheld[:]...),
		TaxReturn:          st.refund,
		CapitalGainsTax:    st.gainsTax,
		Retirement:         st.retirement.TotalValue(),
		Giving:             st.giving.TotalValue(),
		AssetSavings:       st.savings.TotalValue(),
		Assets:             len(st.assets),
		AssetValue:         assetValue,
		CumulativeGiving:   st.givingTracker.Total(),
		CumulativeSpending: st.spendingTracker.Total(),
	}

	st.tax.Reset()
	st.withheld = [MonthsPerYear]Money{}
	st.income = [MonthsPerYear]Money{}
	st.net, st.refund, st.gainsTax = Money{}, Money{}, Money{}
	st.salary.Raise()
	st.summaries = append(st.summaries, s)

	m.logger.Info("year closed",
		zap.Int("year", s.Year),
		zap.Stringer("income", s.Income),
		zap.Stringer("retirement", s.Retirement),
		zap.Stringer("giving", s.Giving),
		zap.Int("assets", s.Assets),
	)
	return s
}

// Legacy gives the legacy share of the giving fund's net value at years from
// start, and returns the amount given.
func (m *PortfolioManager) Legacy(years float64) (Money, error) {
	saved := m.st.checkpoint()
	amount := m.st.giving.NetValue().Scale(m.generosity.LegacyPercent).exact()
	if !amount.IsPositive() {
		return amount, nil
	}
	tax, err := m.st.giving.WithdrawTaxed(amount, years)
	if err == nil {
		err = m.st.givingTracker.Add(amount, years)
	}
	if err != nil {
		m.st = saved
		return Money{}, fmt.Errorf("giving legacy: %w", err)
	}
	m.st.gainsTax = m.st.gainsTax.Add(tax)
	m.logger.Info("legacy given", zap.Stringer("amount", amount))
	return amount, nil
}

func (m *PortfolioManager) Scenario() Scenario              { return m.scenario }
func (m *PortfolioManager) Inflation() InflationAdjuster    { return m.inflation }
func (m *PortfolioManager) Salary() *Salary                 { return &m.st.salary }
func (m *PortfolioManager) TaxCalculator() *TaxCalculator   { return &m.st.tax }
func (m *PortfolioManager) Retirement() *Investment         { return &m.st.retirement }
func (m *PortfolioManager) Giving() *Investment             { return &m.st.giving }
func (m *PortfolioManager) AssetSavings() *Investment       { return &m.st.savings }
func (m *PortfolioManager) GivingTracker() *SpendingTracker { return &m.st.givingTracker }

// SpendingTracker returns the consumption ledger: base and disposable spending.
func (m *PortfolioManager) SpendingTracker() *SpendingTracker { return &m.st.spendingTracker }

// Last returns the last simulated period.
func (m *PortfolioManager) Last() Period { return m.st.last }

// CapitalGainsTax returns the capital gains tax withheld since the last year end.
func (m *PortfolioManager) CapitalGainsTax() Money { return m.st.gainsTax }

// Assets returns an iterator over the held assets, oldest first.
func (m *PortfolioManager) Assets() iter.Seq[*Asset] {
	return func(yield func(*Asset) bool) {
		for i := range m.st.assets {
			if !yield(&m.st.assets[i]) {
				return
			}
		}
	}
}

// NumAssets returns the number of held assets.
func (m *PortfolioManager) NumAssets() int { return len(m.st.assets) }

// Summaries returns the yearly summaries so far.
func (m *PortfolioManager) Summaries() []YearSummary { return slices.Clone(m.st.summaries) }
