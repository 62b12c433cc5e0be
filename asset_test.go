package household

import (
	"errors"
	"testing"
)

func TestAsset_ProfitDividendRate(t *testing.T) {
	a := NewAsset("Flat", USD(150000), 0.036, 0).WithDividend(0.01, DefaultAssetExpenses())
	assertFloat(t, "ProfitDividendRate", a.ProfitDividendRate(), 0.01-0.032/12, 1e-12)

	d, err := a.PayDividend()
	if err != nil {
		t.Fatalf("PayDividend() error = %v", err)
	}
	assertMoney(t, "PayDividend", d, 1100, 0)

	free := NewAsset("Free", USD(150000), 0.036, 0).WithDividend(0.01, AssetExpenses{})
	assertMoney(t, "PayDividend without expenses", must(free.PayDividend()), 1500, 0)
}

func TestAsset_MissingRate(t *testing.T) {
	a := NewAsset("Land", USD(100000), 0.02, 0)
	if _, err := a.PayDividend(); !errors.Is(err, ErrMissingRate) {
		t.Errorf("PayDividend() error = %v, want ErrMissingRate", err)
	}
}

func TestAsset_GrowYearly(t *testing.T) {
	a := NewAsset("Flat", USD(100000), 0.05, 6.0/12)
	testCases := []struct {
		period Period
		want   bool
		value  float64
	}{
		{7, false, 100000},
		{17, false, 100000},
		{18, true, 105000},
		{18, false, 105000},
		{29, false, 105000},
		{40, true, 110250}, // one year at most per call
		{40, false, 110250},
		{42, true, 115762.5},
	}
	for _, tc := range testCases {
		if got := a.Grow(tc.period.Years()); got != tc.want {
			t.Errorf("Grow(%v) = %v, want %v", tc.period, got, tc.want)
		}
		assertMoney(t, "Value", a.Value(), tc.value, 1e-6)
	}
	if a.Name() != "Flat" || a.GrowthRate() != 0.05 {
		t.Errorf("accessors = %q, %v", a.Name(), a.GrowthRate())
	}
}
