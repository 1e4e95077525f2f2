package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// tuiCommand launches the interactive task list. While it owns the
// terminal, logs go to a per-run file under the log dir.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noMouse := fs.Bool("no-mouse", false, "Disable mouse clicks")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if !ui.IsTTY(stdout) {
		return fmt.Errorf("tui requires a TTY (try 'tasklist ls')")
	}

	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.Profile)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()

	logger := newLogger(cfg, runLog.Writer())
	logger.Info("Session started", "profile", cfg.Profile, "backend", cfg.Storage.Backend)

	store, storage, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	err = ui.RunTUI(ctx, store,
		ui.WithLogger(logger),
		ui.WithKeys(cfg.Keys),
		ui.WithTitle(fmt.Sprintf("Tasks (%s)", cfg.Profile)),
		ui.WithMouse(!*noMouse),
	)
	logger.Info("Session ended", "tasks", store.Len(), "err", err)
	return err
}
