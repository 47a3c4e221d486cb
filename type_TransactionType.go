package capgains

import (
	"fmt"
	"strings"
)

// TransactionType tells whether a transaction acquires or disposes of units.
type TransactionType int

const (
	// Buy acquires units and opens a lot.
	Buy TransactionType = iota + 1
	// Sell disposes of units, consuming the oldest lots first.
	Sell
)

func (t TransactionType) String() string {
	switch t {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType. It is case insensitive.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q, want Buy or Sell", s)
	}
}
