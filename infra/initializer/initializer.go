package initializer

import (
	"errors"
	"io"

	infraeventbus "github.com/amirasaad/simplebank/infra/eventbus"
	"github.com/amirasaad/simplebank/pkg/config"
	"github.com/amirasaad/simplebank/pkg/handler/audit"
	"github.com/amirasaad/simplebank/pkg/ledger"
)

// InitializeDependencies wires the logger, event bus and ledger described by cfg.
// Log output goes to logOut so it never interleaves with the menu.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (*config.Deps, error) {
	if cfg == nil || cfg.Log == nil || cfg.Ledger == nil {
		return nil, errors.New("initializer: incomplete configuration")
	}
	logger := setupLogger(cfg.Log, logOut)

	bus := infraeventbus.NewWithMemory(logger)
	if cfg.Ledger.Audit {
		audit.Register(bus, logger)
	}

	logger.Debug("dependencies initialized", "env", cfg.Env, "audit", cfg.Ledger.Audit)
	return &config.Deps{
		Ledger:   ledger.New(bus, logger),
		EventBus: bus,
		Logger:   logger,
		Config:   cfg,
	}, nil
}
