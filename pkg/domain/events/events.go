// Package events defines the domain events emitted by the ledger after each
// successful state change.
package events

import (
	"time"

	"github.com/amirasaad/simplebank/pkg/money"
	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// Event type names.
const (
	AccountCreated = "AccountCreatedEvent"
	Deposited      = "DepositedEvent"
	Withdrawn      = "WithdrawnEvent"
)

// FlowEvent carries the fields shared by every account event.
type FlowEvent struct {
	ID        uuid.UUID
	AccountID string
	Timestamp time.Time
}

// AccountCreatedEvent is emitted after a new account is stored in the ledger.
type AccountCreatedEvent struct {
	FlowEvent
	HolderName     string
	InitialBalance money.Money
}

// DepositedEvent is emitted after a deposit is applied.
type DepositedEvent struct {
	FlowEvent
	Amount  money.Money
	Balance money.Money // Balance after the deposit
}

// WithdrawnEvent is emitted after a withdrawal is applied.
type WithdrawnEvent struct {
	FlowEvent
	Amount  money.Money
	Balance money.Money // Balance after the withdrawal
}

func (e AccountCreatedEvent) Type() string { return AccountCreated }
func (e DepositedEvent) Type() string      { return Deposited }
func (e WithdrawnEvent) Type() string      { return Withdrawn }

// NewFlowEvent stamps a fresh event ID and timestamp for accountID.
func NewFlowEvent(accountID string, at time.Time) FlowEvent {
	return FlowEvent{
		ID:        uuid.New(),
		AccountID: accountID,
		Timestamp: at,
	}
}
