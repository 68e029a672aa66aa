package config

import (
	"log/slog"

	"github.com/amirasaad/simplebank/pkg/eventbus"
	"github.com/amirasaad/simplebank/pkg/ledger"
)

// Deps holds everything the menu shell needs at runtime.
type Deps struct {
	Ledger   *ledger.Ledger
	EventBus eventbus.Bus
	Logger   *slog.Logger
	Config   *App
}
