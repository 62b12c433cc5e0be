package household

import "fmt"

// ChangeType is the kind of change recorded in an investment's transaction log.
type ChangeType int

const (
	// Add is a contribution: shares bought at the current share price.
	Add ChangeType = iota
	// Grow is the monthly compounding of the share price.
	Grow
	// Withdraw is a tax-aware sale of shares.
	Withdraw
)

func (c ChangeType) String() string {
	switch c {
	case Add:
		return "add"
	case Grow:
		return "grow"
	case Withdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// ParseChangeType parses a string into a ChangeType.
func ParseChangeType(s string) (ChangeType, error) {
	switch s {
	case "add":
		return Add, nil
	case "grow":
		return Grow, nil
	case "withdraw":
		return Withdraw, nil
	default:
		return 0, fmt.Errorf("unknown change type: %q", s)
	}
}

func (c ChangeType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ChangeType) UnmarshalText(b []byte) (err error) {
	*c, err = ParseChangeType(string(b))
	return err
}
