package household

import "fmt"

// AssetExpenses are the yearly costs of holding a rented property, each as a
// fraction of its value.
type AssetExpenses struct {
	Vacancy     float64 `yaml:"vacancy" toml:"vacancy" json:"vacancy"`
	Insurance   float64 `yaml:"insurance" toml:"insurance" json:"insurance"`
	PropertyTax float64 `yaml:"property_tax" toml:"property_tax" json:"propertyTax"`
	Maintenance float64 `yaml:"maintenance" toml:"maintenance" json:"maintenance"`
}

// DefaultAssetExpenses returns typical yearly drags on a rental property.
func DefaultAssetExpenses() AssetExpenses {
	return AssetExpenses{
		Vacancy:     0.006,
		Insurance:   0.005,
		PropertyTax: 0.011,
		Maintenance: 0.01,
	}
}

// Monthly returns the total expenses per month as a fraction of value.
func (e AssetExpenses) Monthly() float64 {
	return (e.Vacancy + e.Insurance + e.PropertyTax + e.Maintenance) / MonthsPerYear
}

// Asset is a real property like holding. Its value appreciates once a year
// and it pays a monthly dividend (rent) net of its expenses.
type Asset struct {
	name        string
	value       Money
	growthRate  float64 // annual
	dividend    float64 // monthly, gross
	hasDividend bool
	profitRate  float64 // monthly, net of expenses
	lastGrown   Period
}

// NewAsset returns an asset bought for price at years from start.
func NewAsset(name string, price Money, growthRate float64, acquired float64) *Asset {
	return &Asset{
		name:       name,
		value:      price,
		growthRate: growthRate,
		lastGrown:  PeriodOf(acquired),
	}
}

// WithDividend sets the gross monthly dividend rate, and derives the profit
// dividend rate by removing the monthly share of the yearly expenses.
func (a *Asset) WithDividend(rate float64, expenses AssetExpenses) *Asset {
	a.dividend = rate
	a.hasDividend = true
	a.profitRate = rate - expenses.Monthly()
	return a
}

func (a *Asset) Name() string                { return a.name }
func (a *Asset) Value() Money                { return a.value }
func (a *Asset) GrowthRate() float64         { return a.growthRate }
func (a *Asset) ProfitDividendRate() float64 { return a.profitRate }

// Grow appreciates the value by the annual growth rate when a full year has
// elapsed since the last appreciation (or the purchase). It applies at most
// one year of growth per call and reports whether it did.
func (a *Asset) Grow(years float64) bool {
	if PeriodOf(years)-a.lastGrown < MonthsPerYear {
		return false
	}
	a.value = a.value.Scale(1 + a.growthRate).exact()
	a.lastGrown += MonthsPerYear
	return true
}

// PayDividend returns the monthly profit of the asset, rounded to cents.
func (a *Asset) PayDividend() (Money, error) {
	if !a.hasDividend {
		return Money{}, fmt.Errorf("%w: asset %q", ErrMissingRate, a.name)
	}
	return a.value.Scale(a.profitRate).Round(), nil
}
