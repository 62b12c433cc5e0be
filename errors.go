package household

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for malformed strategies, rates or bracket tables.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInvalidIncome is returned when a projected income matches no tax bracket.
	ErrInvalidIncome = errors.New("invalid income")
	// ErrMissingRate is returned when a dividend is paid by an asset without a dividend rate.
	ErrMissingRate = errors.New("dividend rate not set")
	// ErrInvalidMonth is returned for month keys outside 1..12 or months without income.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidAmount is returned for negative contributions, withdrawals or spends.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNoCostBasis is returned when withdrawing from an investment that never received a contribution.
	ErrNoCostBasis = errors.New("cost basis not established")
	// ErrInsufficientFunds is returned when a withdrawal needs more shares than held.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidPeriod is returned when simulated time does not move forward.
	ErrInvalidPeriod = errors.New("invalid period")
)

// InvalidIncomeError reports a projected income that no tax bracket contains.
type InvalidIncomeError struct {
	Income float64
}

func (e *InvalidIncomeError) Error() string {
	return fmt.Sprintf("invalid income: no tax bracket contains %.2f", e.Income)
}

// Is makes errors.Is(err, ErrInvalidIncome) true.
func (e *InvalidIncomeError) Is(target error) bool { return target == ErrInvalidIncome }

// configErrorf formats a configuration failure wrapping ErrConfiguration.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
