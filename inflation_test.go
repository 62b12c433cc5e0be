package household

import (
	"errors"
	"math"
	"testing"
)

func TestNewInflationAdjuster(t *testing.T) {
	for _, rate := range []float64{-0.01, 1, 1.5, math.NaN()} {
		if _, err := NewInflationAdjuster(rate); !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewInflationAdjuster(%v) error = %v, want ErrConfiguration", rate, err)
		}
	}
	a, err := NewInflationAdjuster(0.04)
	if err != nil {
		t.Fatalf("NewInflationAdjuster(0.04) error = %v", err)
	}
	if a.Rate() != 0.04 {
		t.Errorf("Rate() = %v, want 0.04", a.Rate())
	}
}

func TestInflationAdjuster(t *testing.T) {
	a := must(NewInflationAdjuster(0.04))
	x := USD(1000)

	testCases := []struct {
		name string
		got  Money
		want float64
	}{
		{"ReverseAdjust 0 years", a.ReverseAdjust(x, 0), 1000},
		{"ReverseAdjust 1 year", a.ReverseAdjust(x, 1), 960},
		{"ReverseAdjust 2 years", a.ReverseAdjust(x, 2), 921.6},
		{"ForwardAdjust 1 year", a.ForwardAdjust(x, 1), 1040},
		{"ForwardAdjust 2 years", a.ForwardAdjust(x, 2), 1081.6},
		{"ForwardAdjust half year", a.ForwardAdjust(x, 0.5), 1000 * math.Sqrt(1.04)},
		{"Nominal 1 year", a.Nominal(x, 1), 1000 / 0.96},
		{"Discount 1 year", a.Discount(x, 1), 1000 / 1.04},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertMoney(t, tc.name, tc.got, tc.want, 1e-6)
		})
	}
}

func TestInflationAdjuster_Inverses(t *testing.T) {
	a := must(NewInflationAdjuster(0.04))
	x := USD(123456.78)
	for _, years := range []float64{0, 1.0 / 12, 1, 7.5, 30} {
		assertMoney(t, "Nominal(ReverseAdjust)", a.Nominal(a.ReverseAdjust(x, years), years), x.Float(), 1e-6)
		assertMoney(t, "Discount(ForwardAdjust)", a.Discount(a.ForwardAdjust(x, years), years), x.Float(), 1e-6)
	}
	// deflating by (1 - r) is not undoing a (1 + r) inflation.
	lossy := a.ReverseAdjust(a.ForwardAdjust(x, 1), 1)
	assertMoney(t, "ReverseAdjust(ForwardAdjust)", lossy, x.Float()*(1-0.04*0.04), 1e-6)
}

func TestInflationAdjuster_ZeroRate(t *testing.T) {
	a := must(NewInflationAdjuster(0))
	x := USD(500)
	if got := a.ReverseAdjust(x, 10); !got.Equal(x) {
		t.Errorf("ReverseAdjust() = %v, want %v", got, x)
	}
	if got := a.ForwardAdjust(x, 10); !got.Equal(x) {
		t.Errorf("ForwardAdjust() = %v, want %v", got, x)
	}
}
