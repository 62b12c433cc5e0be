package household

import (
	"fmt"
	"iter"
	"slices"
)

// Spend is an entry of a SpendingTracker.
type Spend struct {
	Amount Money   `json:"amount"`
	Total  Money   `json:"total"` // running total, including this spend
	Years  float64 `json:"years"`
}

// SpendingTracker is an append-only ledger of outflows with a running total.
// Its zero value is ready to use.
type SpendingTracker struct {
	total Money
	log   []Spend
}

// Add records a non negative spend.
func (s *SpendingTracker) Add(amount Money, years float64) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: cannot spend %v", ErrInvalidAmount, amount)
	}
	s.total = s.total.Add(amount)
	s.log = append(s.log, Spend{Amount: amount, Total: s.total, Years: years})
	return nil
}

// Total returns the sum of all spends.
func (s *SpendingTracker) Total() Money { return s.total }

// Entries returns an iterator over the spends, oldest first.
func (s *SpendingTracker) Entries() iter.Seq[Spend] { return slices.Values(s.log) }

// Len returns the number of recorded spends.
func (s *SpendingTracker) Len() int { return len(s.log) }
