// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	logger *log.Logger
	keys   config.KeysConfig
	title  string
	mouse  bool
}

// WithLogger sets the logger that receives persist failures.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKeys sets the list key bindings.
func WithKeys(keys config.KeysConfig) TUIOption {
	return func(c *tuiConfig) {
		c.keys = keys
	}
}

// WithTitle sets the heading shown above the input.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		if title != "" {
			c.title = title
		}
	}
}

// WithMouse enables or disables mouse clicks on rows.
func WithMouse(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.mouse = enabled
	}
}

func newTUIConfig(opts []TUIOption) *tuiConfig {
	c := &tuiConfig{
		logger: log.New(io.Discard),
		keys:   config.DefaultKeys(),
		title:  "Tasks",
		mouse:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunTUI loads store and runs the task list until the user quits or ctx is
// cancelled.
func RunTUI(ctx context.Context, store *todo.Store, opts ...TUIOption) error {
	c := newTUIConfig(opts)

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(ctx, store, c)
	return runProgram(ctx, model, c)
}

func runProgram(ctx context.Context, model *tuiModel, c *tuiConfig) error {
	options := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.mouse {
		options = append(options, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, options...)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
