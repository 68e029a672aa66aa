package account

import (
	"errors"
	"sync"
	"time"

	"github.com/amirasaad/simplebank/pkg/money"
)

var (
	// ErrInvalidAmount is returned when a deposit or withdrawal amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNegativeInitialBalance is returned when an account is opened with a negative balance.
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")

	// ErrDuplicateID is returned when an account ID is already taken.
	ErrDuplicateID = errors.New("account id already exists")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")
)

// Account represents a single bank account, encapsulating its balance and history.
// It acts as an aggregate root, ensuring all state changes are consistent and valid.
//
// Invariants:
//   - ID and HolderName never change after Build.
//   - The balance can never be negative; violating operations are rejected, never clamped.
//   - History is append-only and holds one entry for creation plus one per
//     successful deposit or withdrawal, in the order they happened.
//   - A failed operation leaves balance and history untouched.
type Account struct {
	ID         string
	HolderName string
	CreatedAt  time.Time

	mu      sync.Mutex
	balance money.Money
	history []Entry
	now     func() time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id         string
	holderName string
	balance    money.Money
	createdAt  time.Time
	now        func() time.Time
}

// New creates a new Builder with a zero balance and the wall clock.
func New() *Builder {
	return &Builder{
		balance: money.Zero(),
		now:     time.Now,
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id string) *Builder {
	b.id = id
	return b
}

// WithHolderName sets the display name of the account holder.
func (b *Builder) WithHolderName(name string) *Builder {
	b.holderName = name
	return b
}

// WithBalance sets the initial balance. It must not be negative.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithClock overrides the time source used to stamp history entries.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Build validates the initial balance and returns the new Account with its
// creation entry already recorded.
func (b *Builder) Build() (*Account, error) {
	if b.balance.IsNegative() {
		return nil, ErrNegativeInitialBalance
	}
	createdAt := b.createdAt
	if createdAt.IsZero() {
		createdAt = b.now()
	}
	return &Account{
		ID:         b.id,
		HolderName: b.holderName,
		CreatedAt:  createdAt,
		balance:    b.balance,
		history: []Entry{{
			Kind:      EntryCreated,
			Amount:    b.balance,
			Balance:   b.balance,
			CreatedAt: createdAt,
		}},
		now: b.now,
	}, nil
}

// Balance returns the current balance.
func (a *Account) Balance() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// ValidateDeposit checks the deposit invariants without mutating the account.
func (a *Account) ValidateDeposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateWithdraw checks the withdrawal invariants without mutating the account.
// Invariants enforced:
//   - Withdrawal amount must be positive.
//   - Cannot withdraw more than the current balance.
func (a *Account) ValidateWithdraw(amount money.Money) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.validateWithdraw(amount)
}

func (a *Account) validateWithdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit adds amount to the balance and records a deposit entry.
func (a *Account) Deposit(amount money.Money) (Entry, error) {
	if err := a.ValidateDeposit(amount); err != nil {
		return Entry{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	return a.record(EntryDeposit, amount), nil
}

// Withdraw removes amount from the balance and records a withdrawal entry.
func (a *Account) Withdraw(amount money.Money) (Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.validateWithdraw(amount); err != nil {
		return Entry{}, err
	}
	a.balance = a.balance.Subtract(amount)
	return a.record(EntryWithdrawal, amount), nil
}

// History returns a copy of the account's entries, oldest first.
func (a *Account) History() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.history))
	copy(out, a.history)
	return out
}

// record appends an entry for the balance that was just applied. Callers hold mu.
func (a *Account) record(kind EntryKind, amount money.Money) Entry {
	e := Entry{
		Kind:      kind,
		Amount:    amount,
		Balance:   a.balance,
		CreatedAt: a.now(),
	}
	a.history = append(a.history, e)
	return e
}
