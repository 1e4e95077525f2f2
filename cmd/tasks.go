package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/view"
)

// withLoadedStore opens storage, loads the task list and calls fn with a
// synchronizer that prints each change as a line on stdout. It refuses to
// run fn when storage could not be read.
func withLoadedStore(ctx context.Context, cfg *config.Config, fn func(*view.Synchronizer, *log.Logger) error) error {
	logger := newLogger(cfg, stderr)
	store, storage, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	if state := store.Load(ctx); state == todo.LoadedReset {
		if !store.Writable() {
			return fmt.Errorf("%w; run 'tasklist doctor' for details", todo.ErrUnreadable)
		}
		logger.Warn("Stored task list was unreadable and has been ignored; run 'tasklist doctor' for details")
	}
	return fn(view.New(store, view.NewLineSurface(stdout), view.WithLogger(logger)), logger)
}

// addCommand adds one task from the remaining arguments.
func addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	text := strings.Join(args, " ")
	return withLoadedStore(ctx, cfg, func(sync *view.Synchronizer, logger *log.Logger) error {
		task, err := sync.Add(ctx, text)
		if task == nil && err == nil {
			logger.Debug("Nothing to add")
		}
		return err
	})
}

// toggleCommand flips the completed state of one task.
func toggleCommand(ctx context.Context, cfg *config.Config, args []string) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}
	return withLoadedStore(ctx, cfg, func(sync *view.Synchronizer, logger *log.Logger) error {
		_, found, err := sync.Toggle(ctx, id)
		if !found {
			logger.Info("No task with that id", "id", id)
		}
		return err
	})
}

// deleteCommand removes one task.
func deleteCommand(ctx context.Context, cfg *config.Config, args []string) error {
	id, err := parseID("rm", args)
	if err != nil {
		return err
	}
	return withLoadedStore(ctx, cfg, func(sync *view.Synchronizer, logger *log.Logger) error {
		found, err := sync.Delete(ctx, id)
		if !found {
			logger.Info("No task with that id", "id", id)
		}
		return err
	})
}

// lsCommand prints every task in order.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "Output format (text|json)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	logger := newLogger(cfg, stderr)
	store, storage, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	switch strings.ToLower(*format) {
	case "text":
		sync := view.New(store, view.NewLineSurface(stdout), view.WithLogger(logger))
		if state := sync.Init(ctx); state == todo.LoadedReset {
			logger.Warn("Stored task list was unreadable and has been ignored; run 'tasklist doctor' for details")
		}
		return nil
	case "json":
		store.Load(ctx)
		tasks := store.Tasks()
		if tasks == nil {
			tasks = []todo.Task{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	default:
		return fmt.Errorf("invalid format %q (expected text|json)", *format)
	}
}

// parseID reads the single task id argument of cmd.
func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: tasklist %s <id>", cmd)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}
