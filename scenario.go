package household

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultAssetPrice is the price, in today's money, of one asset unit.
const DefaultAssetPrice = 150000

// Scenario is the whole configuration of a simulated household.
type Scenario struct {
	Name     string  `yaml:"name" toml:"name"`
	Currency string  `yaml:"currency,omitempty" toml:"currency,omitempty"`
	Years    int     `yaml:"years" toml:"years"`
	Age      int     `yaml:"age,omitempty" toml:"age,omitempty"` // informative only
	Salary   float64 `yaml:"salary" toml:"salary"`
	Raise    float64 `yaml:"raise" toml:"raise"`

	Spending   SpendingStrategy   `yaml:"spending" toml:"spending"`
	Generosity GenerosityStrategy `yaml:"generosity" toml:"generosity"`
	Economy    Economy            `yaml:"economy" toml:"economy"`
	Asset      AssetPolicy        `yaml:"asset" toml:"asset"`
	Seeds      Seeds              `yaml:"seeds" toml:"seeds"`
}

// Economy holds the rates of the world the household lives in.
type Economy struct {
	Inflation         float64      `yaml:"inflation" toml:"inflation"`
	InvestmentGrowth  float64      `yaml:"investment_growth" toml:"investment_growth"`
	CapitalGainsRate  float64      `yaml:"capital_gains_rate" toml:"capital_gains_rate"`
	StandardDeduction float64      `yaml:"standard_deduction" toml:"standard_deduction"`
	TaxBrackets       []TaxBracket `yaml:"tax_brackets,omitempty" toml:"tax_brackets,omitempty"` // empty means the default table
}

// AssetPolicy describes the assets the household buys.
type AssetPolicy struct {
	Price    float64       `yaml:"price" toml:"price"` // in today's money
	Growth   float64       `yaml:"growth" toml:"growth"`
	Dividend float64       `yaml:"dividend" toml:"dividend"` // monthly, gross
	Expenses AssetExpenses `yaml:"expenses" toml:"expenses"`
}

// Seeds are initial balances contributed at time zero.
type Seeds struct {
	Retirement float64 `yaml:"retirement" toml:"retirement"`
	Giving     float64 `yaml:"giving" toml:"giving"`
}

// DefaultScenario returns a household earning 120,000 a year, spending half
// of it and saving 15% for retirement, over 30 years.
func DefaultScenario() Scenario {
	return Scenario{
		Name:   "default",
		Years:  30,
		Salary: 120000,
		Raise:  DefaultRaiseRate,
		Spending: SpendingStrategy{
			BaseSpending:     0.5,
			RetirementSaving: 0.15,
			DisposableSpend:  0.4,
			DisposableGive:   0.2,
		},
		Generosity: GenerosityStrategy{
			StraightPercent: 0.7,
			DrawdownRate:    0.05,
			LegacyPercent:   0.5,
		},
		Economy: Economy{
			Inflation:         DefaultInflationRate,
			InvestmentGrowth:  DefaultInvestmentGrowth,
			CapitalGainsRate:  DefaultCapitalGainsRate,
			StandardDeduction: DefaultStandardDeduction,
		},
		Asset: AssetPolicy{
			Price:    DefaultAssetPrice,
			Growth:   0.036,
			Dividend: 0.01,
			Expenses: DefaultAssetExpenses(),
		},
	}
}

// Validate returns every problem of the scenario, joined.
func (s Scenario) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, configErrorf(format, args...))
		}
	}
	finite := func(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

	check(s.Salary > 0 && finite(s.Salary), "salary %v must be positive", s.Salary)
	check(s.Raise >= 0 && finite(s.Raise), "raise %v must not be negative", s.Raise)
	check(s.Years >= 0, "years %d must not be negative", s.Years)
	errs = append(errs, s.Spending.Validate(), s.Generosity.Validate())

	e := s.Economy
	check(e.Inflation >= 0 && e.Inflation < 1, "inflation %v not in [0, 1)", e.Inflation)
	check(e.InvestmentGrowth > -1 && finite(e.InvestmentGrowth), "investment growth %v must be above -1", e.InvestmentGrowth)
	errs = append(errs, fraction("capital gains rate", e.CapitalGainsRate))
	check(e.StandardDeduction >= 0 && finite(e.StandardDeduction), "standard deduction %v must not be negative", e.StandardDeduction)
	if len(e.TaxBrackets) > 0 {
		_, err := NewTaxBrackets(e.TaxBrackets...)
		errs = append(errs, err)
	}

	a := s.Asset
	check(a.Price > 0 && finite(a.Price), "asset price %v must be positive", a.Price)
	check(a.Growth > -1 && finite(a.Growth), "asset growth %v must be above -1", a.Growth)
	errs = append(errs, fraction("asset dividend", a.Dividend))
	x := a.Expenses
	errs = append(errs,
		fraction("vacancy", x.Vacancy),
		fraction("insurance", x.Insurance),
		fraction("property tax", x.PropertyTax),
		fraction("maintenance", x.Maintenance),
	)

	check(s.Seeds.Retirement >= 0 && finite(s.Seeds.Retirement), "retirement seed %v must be finite and not negative", s.Seeds.Retirement)
	check(s.Seeds.Giving >= 0 && finite(s.Seeds.Giving), "giving seed %v must be finite and not negative", s.Seeds.Giving)
	return errors.Join(errs...)
}

// Brackets returns the scenario's tax table, the default one if none is set.
func (s Scenario) Brackets() (TaxBrackets, error) {
	if len(s.Economy.TaxBrackets) == 0 {
		return DefaultTaxBrackets(), nil
	}
	return NewTaxBrackets(s.Economy.TaxBrackets...)
}

// money returns a Money in the scenario's currency.
func (s Scenario) money(v float64) Money { return M(v, s.Currency) }

// Format is a scenario file format.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf returns the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("unsupported scenario file %q: use .yaml, .yml or .toml", path)
	}
}

// ParseScenario reads a scenario over the default one, so that missing keys
// keep their default values, and validates it. Unknown keys are rejected.
func ParseScenario(r io.Reader, format Format) (Scenario, error) {
	s := DefaultScenario()
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return Scenario{}, fmt.Errorf("parse error: %w", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return Scenario{}, fmt.Errorf("parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Scenario{}, fmt.Errorf("parse error: unknown keys %v", undecoded)
		}
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q", format)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// LoadScenario reads a scenario file, its format given by its extension.
func LoadScenario(path string) (Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Scenario{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()
	s, err := ParseScenario(f, format)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes the scenario in format.
func (s Scenario) Encode(w io.Writer, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unsupported scenario format %q", format)
	}
}
