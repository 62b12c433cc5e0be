package household

import (
	"errors"
	"testing"
)

func TestSalary(t *testing.T) {
	s, err := NewSalary(USD(120000), DefaultRaiseRate)
	if err != nil {
		t.Fatalf("NewSalary() error = %v", err)
	}
	assertMoney(t, "Paycheck", s.Paycheck(), 10000, 0)

	s.Raise()
	assertMoney(t, "Annual after a raise", s.Annual(), 123600, 0)
	assertMoney(t, "Paycheck after a raise", s.Paycheck(), 10300, 0)

	s.Raise()
	assertMoney(t, "Annual after two raises", s.Annual(), 127308, 0)
	if s.Raises() != 2 {
		t.Errorf("Raises() = %d, want 2", s.Raises())
	}
}

func TestSalary_PaycheckRounding(t *testing.T) {
	s := must(NewSalary(USD(100000), 0))
	assertMoney(t, "Paycheck", s.Paycheck(), 8333.33, 0)
	s.Raise()
	assertMoney(t, "Annual without raise", s.Annual(), 100000, 0)
}

func TestNewSalary_Invalid(t *testing.T) {
	testCases := []struct {
		annual Money
		raise  float64
	}{
		{USD(0), 0.03},
		{USD(-1000), 0.03},
		{USD(50000), -0.01},
	}
	for _, tc := range testCases {
		if _, err := NewSalary(tc.annual, tc.raise); !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewSalary(%v, %v) error = %v, want ErrConfiguration", tc.annual, tc.raise, err)
		}
	}
}
