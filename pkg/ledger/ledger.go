// Package ledger provides the account registry and the caller-facing
// operations over it: opening accounts, balance queries, deposits,
// withdrawals and history views.
//
// Every operation except CreateAccount resolves its target through
// FindAccount first, so an unknown ID always yields account.ErrAccountNotFound.
// A failing operation never changes stored data.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/amirasaad/simplebank/pkg/domain/account"
	"github.com/amirasaad/simplebank/pkg/domain/events"
	"github.com/amirasaad/simplebank/pkg/eventbus"
	"github.com/amirasaad/simplebank/pkg/money"
)

// Ledger maps account IDs to accounts.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account
	bus      eventbus.Bus
	logger   *slog.Logger
}

// New creates an empty Ledger. bus may be nil, in which case no events are emitted.
func New(bus eventbus.Bus, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		accounts: make(map[string]*account.Account),
		bus:      bus,
		logger:   logger.With("component", "ledger"),
	}
}

// CreateAccount opens a new account with the given initial balance.
// It fails with account.ErrNegativeInitialBalance if the balance is negative and
// with account.ErrDuplicateID if id is taken; the existing account is left untouched.
func (l *Ledger) CreateAccount(
	ctx context.Context,
	id, holderName string,
	initialBalance money.Money,
) (*account.Account, error) {
	logger := l.logger.With("account_id", id, "initial_balance", initialBalance.String())
	if initialBalance.IsNegative() {
		logger.Warn("CreateAccount rejected", "error", account.ErrNegativeInitialBalance)
		return nil, account.ErrNegativeInitialBalance
	}

	l.mu.Lock()
	if _, exists := l.accounts[id]; exists {
		l.mu.Unlock()
		logger.Warn("CreateAccount rejected", "error", account.ErrDuplicateID)
		return nil, fmt.Errorf("account %q: %w", id, account.ErrDuplicateID)
	}
	acc, err := account.New().
		WithID(id).
		WithHolderName(holderName).
		WithBalance(initialBalance).
		Build()
	if err != nil {
		l.mu.Unlock()
		logger.Error("CreateAccount failed: domain error", "error", err)
		return nil, err
	}
	l.accounts[id] = acc
	l.mu.Unlock()

	logger.Debug("account created", "holder", holderName)
	l.emit(ctx, events.AccountCreatedEvent{
		FlowEvent:      events.NewFlowEvent(id, acc.CreatedAt),
		HolderName:     holderName,
		InitialBalance: initialBalance,
	})
	return acc, nil
}

// FindAccount returns the account stored under id, or account.ErrAccountNotFound.
func (l *Ledger) FindAccount(_ context.Context, id string) (*account.Account, error) {
	l.mu.RLock()
	acc, ok := l.accounts[id]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("account %q: %w", id, account.ErrAccountNotFound)
	}
	return acc, nil
}

// CheckBalance returns the current balance of the account.
func (l *Ledger) CheckBalance(ctx context.Context, id string) (money.Money, error) {
	acc, err := l.FindAccount(ctx, id)
	if err != nil {
		l.logger.Warn("CheckBalance failed", "account_id", id, "error", err)
		return money.Money{}, err
	}
	return acc.Balance(), nil
}

// Deposit adds amount to the account and returns the recorded history entry.
func (l *Ledger) Deposit(ctx context.Context, id string, amount money.Money) (account.Entry, error) {
	logger := l.logger.With("account_id", id, "amount", amount.String())
	acc, err := l.FindAccount(ctx, id)
	if err != nil {
		logger.Warn("Deposit failed", "error", err)
		return account.Entry{}, err
	}
	entry, err := acc.Deposit(amount)
	if err != nil {
		logger.Warn("Deposit rejected", "error", err)
		return account.Entry{}, fmt.Errorf("deposit to %q: %w", id, err)
	}
	logger.Debug("deposit applied", "balance", entry.Balance.String())
	l.emit(ctx, events.DepositedEvent{
		FlowEvent: events.NewFlowEvent(id, entry.CreatedAt),
		Amount:    entry.Amount,
		Balance:   entry.Balance,
	})
	return entry, nil
}

// Withdraw removes amount from the account and returns the recorded history entry.
func (l *Ledger) Withdraw(ctx context.Context, id string, amount money.Money) (account.Entry, error) {
	logger := l.logger.With("account_id", id, "amount", amount.String())
	acc, err := l.FindAccount(ctx, id)
	if err != nil {
		logger.Warn("Withdraw failed", "error", err)
		return account.Entry{}, err
	}
	entry, err := acc.Withdraw(amount)
	if err != nil {
		logger.Warn("Withdraw rejected", "error", err)
		return account.Entry{}, fmt.Errorf("withdraw from %q: %w", id, err)
	}
	logger.Debug("withdrawal applied", "balance", entry.Balance.String())
	l.emit(ctx, events.WithdrawnEvent{
		FlowEvent: events.NewFlowEvent(id, entry.CreatedAt),
		Amount:    entry.Amount,
		Balance:   entry.Balance,
	})
	return entry, nil
}

// History returns the account's entries, oldest first.
func (l *Ledger) History(ctx context.Context, id string) ([]account.Entry, error) {
	acc, err := l.FindAccount(ctx, id)
	if err != nil {
		l.logger.Warn("History failed", "account_id", id, "error", err)
		return nil, err
	}
	return acc.History(), nil
}

// Accounts returns all accounts ordered by ID.
func (l *Ledger) Accounts(_ context.Context) []*account.Account {
	l.mu.RLock()
	out := make([]*account.Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, acc)
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.accounts)
}

// emit publishes event on the bus. Handler failures are logged, never returned.
func (l *Ledger) emit(ctx context.Context, event events.Event) {
	if l.bus == nil {
		return
	}
	if err := l.bus.Emit(ctx, event); err != nil {
		l.logger.Warn("event handler failed", "type", event.Type(), "error", err)
	}
}
