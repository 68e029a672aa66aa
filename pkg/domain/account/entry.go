package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/simplebank/pkg/money"
)

// EntryKind represents the type of event recorded in an account's history.
type EntryKind string

const (
	// EntryCreated marks the opening of the account with its initial balance.
	EntryCreated EntryKind = "created"
	// EntryDeposit marks a successful deposit.
	EntryDeposit EntryKind = "deposit"
	// EntryWithdrawal marks a successful withdrawal.
	EntryWithdrawal EntryKind = "withdrawal"
)

// Entry is one immutable record in an account's history.
type Entry struct {
	Kind      EntryKind
	Amount    money.Money // Amount moved, or the initial balance for EntryCreated
	Balance   money.Money // Balance snapshot after the entry was applied
	CreatedAt time.Time
}

// String renders the entry for display.
func (e Entry) String() string {
	switch e.Kind {
	case EntryCreated:
		return fmt.Sprintf("Account created with initial balance: %s", e.Amount)
	case EntryDeposit:
		return fmt.Sprintf("Deposited: %s", e.Amount)
	case EntryWithdrawal:
		return fmt.Sprintf("Withdrew: %s", e.Amount)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Amount)
	}
}

// Lines renders a history as display strings, preserving order.
func Lines(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.String())
	}
	return out
}
