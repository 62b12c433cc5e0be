package household

import (
	"math"
	"testing"
)

// USD is a helper for test to create dollars from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// must panics on error, for test setups only.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// assertMoney checks that got is within tolerance of want.
func assertMoney(t *testing.T, name string, got Money, want, tolerance float64) {
	t.Helper()
	if math.Abs(got.Float()-want) > tolerance {
		t.Errorf("%s = %v, want %.4f (±%v)", name, got, want, tolerance)
	}
}

// assertFloat checks that got is within tolerance of want.
func assertFloat(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tolerance)
	}
}
