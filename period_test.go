package household

import "testing"

func TestPeriodOf(t *testing.T) {
	testCases := []struct {
		years     float64
		want      Period
		month     int
		yearIndex int
		yearEnd   bool
		str       string
	}{
		{0, 0, 0, 0, false, "start"},
		{1.0 / 12, 1, 1, 0, false, "Y1-M01"},
		{11.0 / 12, 11, 11, 0, false, "Y1-M11"},
		{1.0, 12, 12, 0, true, "Y1-M12"},
		{13.0 / 12, 13, 1, 1, false, "Y2-M01"},
		{2.0, 24, 12, 1, true, "Y2-M12"},
		{30.0, 360, 12, 29, true, "Y30-M12"},
	}
	for _, tc := range testCases {
		p := PeriodOf(tc.years)
		if p != tc.want {
			t.Errorf("PeriodOf(%v) = %d, want %d", tc.years, p, tc.want)
			continue
		}
		if got := p.Month(); got != tc.month {
			t.Errorf("%d.Month() = %d, want %d", p, got, tc.month)
		}
		if got := p.YearIndex(); got != tc.yearIndex {
			t.Errorf("%d.YearIndex() = %d, want %d", p, got, tc.yearIndex)
		}
		if got := p.IsYearEnd(); got != tc.yearEnd {
			t.Errorf("%d.IsYearEnd() = %v, want %v", p, got, tc.yearEnd)
		}
		if got := p.String(); got != tc.str {
			t.Errorf("%d.String() = %q, want %q", p, got, tc.str)
		}
	}
}

// Accumulating k/12 in floating point must still land on whole months.
func TestPeriodOf_RoundTrip(t *testing.T) {
	years := 0.0
	for k := 1; k <= 600; k++ {
		years += 1.0 / 12
		if got := PeriodOf(years); got != Period(k) {
			t.Fatalf("PeriodOf(sum of %d twelfths) = %d, want %d", k, got, k)
		}
		if got := PeriodOf(Period(k).Years()); got != Period(k) {
			t.Fatalf("PeriodOf(%d.Years()) = %d", k, got)
		}
	}
}
