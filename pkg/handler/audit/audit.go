// Package audit logs every ledger event through slog.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/simplebank/pkg/domain/events"
	"github.com/amirasaad/simplebank/pkg/eventbus"
)

// Register subscribes the audit handler to every ledger event type.
func Register(bus eventbus.Bus, logger *slog.Logger) {
	h := Handler(logger)
	for _, t := range []string{events.AccountCreated, events.Deposited, events.Withdrawn} {
		bus.Register(t, h)
	}
}

// Handler returns an event handler that writes one Info record per event.
func Handler(logger *slog.Logger) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("handler", "audit")
	return func(ctx context.Context, e events.Event) error {
		switch ev := e.(type) {
		case events.AccountCreatedEvent:
			logger.InfoContext(ctx, "account created",
				"event_id", ev.ID,
				"account_id", ev.AccountID,
				"holder", ev.HolderName,
				"initial_balance", ev.InitialBalance.String(),
			)
		case events.DepositedEvent:
			logger.InfoContext(ctx, "deposit",
				"event_id", ev.ID,
				"account_id", ev.AccountID,
				"amount", ev.Amount.String(),
				"balance", ev.Balance.String(),
			)
		case events.WithdrawnEvent:
			logger.InfoContext(ctx, "withdrawal",
				"event_id", ev.ID,
				"account_id", ev.AccountID,
				"amount", ev.Amount.String(),
				"balance", ev.Balance.String(),
			)
		default:
			return fmt.Errorf("audit: unexpected event type %T", e)
		}
		return nil
	}
}
