package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/simplebank/infra/initializer"
	"github.com/amirasaad/simplebank/pkg/config"
	"github.com/amirasaad/simplebank/pkg/shell"
	log "github.com/charmbracelet/log"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Logs go to stderr so they never interleave with the menu.
	deps, err := initializer.InitializeDependencies(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps.Logger.Debug("starting menu", "env", cfg.Env, "color", cfg.Shell.Color)

	sh := shell.New(deps.Ledger, os.Stdin, os.Stdout,
		shell.WithPrompt(cfg.Shell.Prompt),
		shell.WithColor(useColor(cfg.Shell.Color, term.IsTerminal(int(os.Stdout.Fd())))),
		shell.WithLogger(deps.Logger),
	)
	return sh.Run(ctx)
}

// useColor resolves the MENU_COLOR mode against whether stdout is a terminal.
func useColor(mode string, tty bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return tty
	}
}
