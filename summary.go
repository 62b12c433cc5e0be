package household

import (
	"encoding/json"
	"errors"
	"slices"
)

// YearSummary is the yearly record of a simulation, appended at the close out
// of each simulated year.
type YearSummary struct {
	Year               int   // 1 for the first simulated year
	Salary             Money // annual salary of the year, before the raise
	Income             Money // nominal income, dividends and tax return included
	NetIncome          Money // income after the withheld rate
	TaxesWithheld      Money // in real terms
	TaxReturn          Money // nominal, positive is a refund
	CapitalGainsTax    Money // withheld on taxable withdrawals
	Retirement         Money
	Giving             Money
	AssetSavings       Money
	Assets             int
	AssetValue         Money
	CumulativeGiving   Money
	CumulativeSpending Money
}

// Field is a named numeric column of a YearSummary.
type Field struct {
	Name  string
	Value float64
}

// FieldNames lists the columns of a YearSummary in order.
var FieldNames = []string{
	"year",
	"salary",
	"income",
	"net_income",
	"taxes_withheld",
	"tax_return",
	"capital_gains_tax",
	"retirement",
	"giving",
	"asset_savings",
	"assets",
	"asset_value",
	"cumulative_giving",
	"cumulative_spending",
}

// Fields returns the summary as ordered named numbers, in FieldNames order.
func (s YearSummary) Fields() []Field {
	values := []float64{
		float64(s.Year),
		s.Salary.Round().Float(),
		s.Income.Round().Float(),
		s.NetIncome.Round().Float(),
		s.TaxesWithheld.Round().Float(),
		s.TaxReturn.Round().Float(),
		s.CapitalGainsTax.Round().Float(),
		s.Retirement.Round().Float(),
		s.Giving.Round().Float(),
		s.AssetSavings.Round().Float(),
		float64(s.Assets),
		s.AssetValue.Round().Float(),
		s.CumulativeGiving.Round().Float(),
		s.CumulativeSpending.Round().Float(),
	}
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = Field{Name: FieldNames[i], Value: v}
	}
	return fields
}

// Total returns the household wealth at year end: all funds and assets.
func (s YearSummary) Total() Money {
	return Sum(s.Retirement, s.Giving, s.AssetSavings, s.AssetValue)
}

// MarshalJSON writes the summary as a flat object, keys in FieldNames order.
func (s YearSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year", s.Year)
	w.Append("salary", s.Salary)
	w.Append("income", s.Income)
	w.Append("net_income", s.NetIncome)
	w.Append("taxes_withheld", s.TaxesWithheld)
	w.Append("tax_return", s.TaxReturn)
	w.Append("capital_gains_tax", s.CapitalGainsTax)
	w.Append("retirement", s.Retirement)
	w.Append("giving", s.Giving)
	w.Append("asset_savings", s.AssetSavings)
	w.Append("assets", s.Assets)
	w.Append("asset_value", s.AssetValue)
	w.Append("cumulative_giving", s.CumulativeGiving)
	w.Append("cumulative_spending", s.CumulativeSpending)
	return w.MarshalJSON()
}

func (s *YearSummary) UnmarshalJSON(b []byte) error {
	var aux struct {
		Year               int   `json:"year"`
		Salary             Money `json:"salary"`
		Income             Money `json:"income"`
		NetIncome          Money `json:"net_income"`
		TaxesWithheld      Money `json:"taxes_withheld"`
		TaxReturn          Money `json:"tax_return"`
		CapitalGainsTax    Money `json:"capital_gains_tax"`
		Retirement         Money `json:"retirement"`
		Giving             Money `json:"giving"`
		AssetSavings       Money `json:"asset_savings"`
		Assets             int   `json:"assets"`
		AssetValue         Money `json:"asset_value"`
		CumulativeGiving   Money `json:"cumulative_giving"`
		CumulativeSpending Money `json:"cumulative_spending"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = YearSummary(aux)
	return nil
}

// Sink receives the yearly summaries of a simulation, in order.
type Sink interface {
	Append(YearSummary) error
}

// MemorySink keeps the summaries in memory.
type MemorySink struct {
	Summaries []YearSummary
}

func (m *MemorySink) Append(s YearSummary) error {
	m.Summaries = append(m.Summaries, s)
	return nil
}

// Last returns the latest summary, and false if none.
func (m *MemorySink) Last() (YearSummary, bool) {
	if len(m.Summaries) == 0 {
		return YearSummary{}, false
	}
	return m.Summaries[len(m.Summaries)-1], true
}

type tee []Sink

// Tee returns a Sink that appends to every sink. Nil sinks are skipped, and
// every sink receives the summary even if another one fails.
func Tee(sinks ...Sink) Sink {
	return tee(slices.DeleteFunc(slices.Clone(sinks), func(s Sink) bool { return s == nil }))
}

func (t tee) Append(s YearSummary) error {
	var errs error
	for _, sink := range t {
		errs = errors.Join(errs, sink.Append(s))
	}
	return errs
}
