package ledger_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	infraeventbus "github.com/amirasaad/simplebank/infra/eventbus"
	"github.com/amirasaad/simplebank/pkg/domain/account"
	"github.com/amirasaad/simplebank/pkg/domain/events"
	"github.com/amirasaad/simplebank/pkg/ledger"
	"github.com/amirasaad/simplebank/pkg/money"
	"github.com/amirasaad/simplebank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	testutils.SilenceLogs()
	os.Exit(m.Run())
}

func newLedger(t *testing.T) (*ledger.Ledger, *infraeventbus.MemoryEventBus) {
	t.Helper()
	bus := infraeventbus.NewWithMemory(testutils.DiscardLogger())
	return ledger.New(bus, testutils.DiscardLogger()), bus
}

func TestCreateAccount_ThenCheckBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, balance := range []string{"0", "0.01", "100", "123456789.987654321"} {
		t.Run(balance, func(t *testing.T) {
			l, _ := newLedger(t)
			_, err := l.CreateAccount(ctx, "id-"+balance, "Holder", money.Must(balance))
			require.NoError(t, err)

			got, err := l.CheckBalance(ctx, "id-"+balance)
			require.NoError(t, err)
			assert.True(t, got.Equals(money.Must(balance)), "got %s want %s", got, balance)
		})
	}
}

func TestCreateAccount_NegativeInitialBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, bus := newLedger(t)

	acc, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("-1"))
	assert.ErrorIs(t, err, account.ErrNegativeInitialBalance)
	assert.Nil(t, acc)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, bus.Published())

	_, err = l.FindAccount(ctx, "A1")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestCreateAccount_DuplicateID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, _ := newLedger(t)

	first, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("100"))
	require.NoError(t, err)

	second, err := l.CreateAccount(ctx, "A1", "Mallory", money.Must("999"))
	assert.ErrorIs(t, err, account.ErrDuplicateID)
	assert.Nil(t, second)

	found, err := l.FindAccount(ctx, "A1")
	require.NoError(t, err)
	assert.Same(t, first, found)
	assert.Equal(t, "Alice", found.HolderName)
	assert.True(t, found.Balance().Equals(money.Must("100")))
	assert.Len(t, found.History(), 1)
	assert.Equal(t, 1, l.Len())
}

func TestCreateAccount_NegativeCheckedBeforeDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, _ := newLedger(t)
	_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("1"))
	require.NoError(t, err)

	_, err = l.CreateAccount(ctx, "A1", "Alice", money.Must("-1"))
	assert.ErrorIs(t, err, account.ErrNegativeInitialBalance)
}

func TestUnknownAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, bus := newLedger(t)

	_, err := l.CheckBalance(ctx, "ghost")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.ErrorContains(t, err, `"ghost"`)

	_, err = l.Deposit(ctx, "ghost", money.Must("1"))
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	_, err = l.Withdraw(ctx, "ghost", money.Must("1"))
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	h, err := l.History(ctx, "ghost")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.Nil(t, h)

	assert.Empty(t, bus.Published())
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("positive amount", func(t *testing.T) {
		l, bus := newLedger(t)
		_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("10"))
		require.NoError(t, err)

		entry, err := l.Deposit(ctx, "A1", money.Must("2.5"))
		require.NoError(t, err)
		assert.Equal(t, "Deposited: 2.5", entry.String())

		bal, err := l.CheckBalance(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, "12.5", bal.String())

		published := bus.Published()
		require.Len(t, published, 2)
		dep, ok := published[1].(events.DepositedEvent)
		require.True(t, ok)
		assert.Equal(t, "A1", dep.AccountID)
		assert.Equal(t, "12.5", dep.Balance.String())
	})

	for _, amount := range []string{"0", "-5"} {
		t.Run("invalid amount "+amount, func(t *testing.T) {
			l, bus := newLedger(t)
			_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("10"))
			require.NoError(t, err)

			_, err = l.Deposit(ctx, "A1", money.Must(amount))
			assert.ErrorIs(t, err, account.ErrInvalidAmount)

			bal, _ := l.CheckBalance(ctx, "A1")
			assert.Equal(t, "10.0", bal.String())
			h, _ := l.History(ctx, "A1")
			assert.Len(t, h, 1)
			assert.Len(t, bus.Published(), 1)
		})
	}
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name        string
		amount      string
		wantErr     error
		wantBalance string
		wantHistory int
	}{
		{"partial", "4", nil, "6.0", 2},
		{"exact balance", "10", nil, "0.0", 2},
		{"insufficient", "10.01", account.ErrInsufficientFunds, "10.0", 1},
		{"zero", "0", account.ErrInvalidAmount, "10.0", 1},
		{"negative", "-1", account.ErrInvalidAmount, "10.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLedger(t)
			_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("10"))
			require.NoError(t, err)

			_, err = l.Withdraw(ctx, "A1", money.Must(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			bal, err := l.CheckBalance(ctx, "A1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, bal.String())
			h, err := l.History(ctx, "A1")
			require.NoError(t, err)
			assert.Len(t, h, tt.wantHistory)
		})
	}
}

func TestScenario_Alice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, bus := newLedger(t)

	_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("100.0"))
	require.NoError(t, err)
	bal, err := l.CheckBalance(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "100.0", bal.String())

	_, err = l.Deposit(ctx, "A1", money.Must("50.0"))
	require.NoError(t, err)
	bal, _ = l.CheckBalance(ctx, "A1")
	assert.Equal(t, "150.0", bal.String())

	h, err := l.History(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Account created with initial balance: 100.0",
		"Deposited: 50.0",
	}, account.Lines(h))

	_, err = l.Withdraw(ctx, "A1", money.Must("200.0"))
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	bal, _ = l.CheckBalance(ctx, "A1")
	assert.Equal(t, "150.0", bal.String())

	_, err = l.Withdraw(ctx, "A1", money.Must("150.0"))
	require.NoError(t, err)
	bal, _ = l.CheckBalance(ctx, "A1")
	assert.Equal(t, "0.0", bal.String())

	types := make([]string, 0)
	for _, e := range bus.Published() {
		types = append(types, e.Type())
	}
	assert.Equal(t, []string{events.AccountCreated, events.Deposited, events.Withdrawn}, types)
}

func TestHistory_NPlusOneEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, _ := newLedger(t)
	_, err := l.CreateAccount(ctx, "A1", "Alice", money.Zero())
	require.NoError(t, err)

	want := []string{"Account created with initial balance: 0.0"}
	for i := 1; i <= 10; i++ {
		amt := money.New(float64(i))
		if i%3 == 0 {
			_, err = l.Withdraw(ctx, "A1", amt)
			want = append(want, fmt.Sprintf("Withdrew: %s", amt))
		} else {
			_, err = l.Deposit(ctx, "A1", amt)
			want = append(want, fmt.Sprintf("Deposited: %s", amt))
		}
		require.NoError(t, err)
	}

	h, err := l.History(ctx, "A1")
	require.NoError(t, err)
	assert.Len(t, h, 11)
	assert.Equal(t, want, account.Lines(h))
}

func TestFailureLeavesOtherAccountsUsable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, _ := newLedger(t)
	_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("5"))
	require.NoError(t, err)
	_, err = l.CreateAccount(ctx, "B1", "Bob", money.Must("7"))
	require.NoError(t, err)

	_, err = l.Withdraw(ctx, "A1", money.Must("6"))
	require.ErrorIs(t, err, account.ErrInsufficientFunds)

	_, err = l.Deposit(ctx, "B1", money.Must("3"))
	require.NoError(t, err)
	bal, _ := l.CheckBalance(ctx, "B1")
	assert.Equal(t, "10.0", bal.String())
}

func TestAccounts_SortedByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l, _ := newLedger(t)
	for _, id := range []string{"C", "A", "B"} {
		_, err := l.CreateAccount(ctx, id, "holder "+id, money.Zero())
		require.NoError(t, err)
	}

	ids := make([]string, 0, 3)
	for _, acc := range l.Accounts(ctx) {
		ids = append(ids, acc.ID)
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestNilBusAndLogger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := ledger.New(nil, nil)
	_, err := l.CreateAccount(ctx, "A1", "Alice", money.Must("1"))
	require.NoError(t, err)
	_, err = l.Deposit(ctx, "A1", money.Must("1"))
	require.NoError(t, err)
	bal, err := l.CheckBalance(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "2.0", bal.String())
}

func TestConcurrentCreateSameID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := ledger.New(nil, nil)

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.CreateAccount(ctx, "same", "x", money.Zero()); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, l.Len())
}
