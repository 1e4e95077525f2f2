// Package view keeps a visual surface in step with a todo.Store.
//
// Every mutation goes through the Synchronizer, which calls the store and
// then applies exactly one incremental update to the surface. After Init the
// surface is never rebuilt from the store.
package view

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// Surface renders rows keyed by task id.
type Surface interface {
	// AppendRow adds a row for t after all existing rows.
	AppendRow(t todo.Task)
	// SetCompleted updates the completed indicator of the row for id.
	SetCompleted(id int64, completed bool)
	// RemoveRow removes the row for id.
	RemoveRow(id int64)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger used to report persist failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Synchronizer forwards gestures to the store and mirrors the results on
// the surface.
type Synchronizer struct {
	store   *todo.Store
	surface Surface
	logger  *log.Logger
}

// New returns a Synchronizer for store and surface.
func New(store *todo.Store, surface Surface, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:   store,
		surface: surface,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Synchronizer) Store() *todo.Store {
	return s.store
}

// Init loads the store and renders one row per task in order.
func (s *Synchronizer) Init(ctx context.Context) todo.LoadState {
	state := s.store.Load(ctx)
	for _, t := range s.store.Tasks() {
		s.surface.AppendRow(t)
	}
	return state
}

// Add creates a task from text and appends its row. It returns nil when
// text is blank.
func (s *Synchronizer) Add(ctx context.Context, text string) (*todo.Task, error) {
	task, err := s.store.Add(ctx, text)
	if task == nil {
		return nil, err
	}
	s.logPersist(err, "add", task.ID)
	s.surface.AppendRow(*task)
	return task, err
}

// Toggle flips the task with id and updates its row. Unknown ids are
// ignored.
func (s *Synchronizer) Toggle(ctx context.Context, id int64) (completed, found bool, err error) {
	completed, found, err = s.store.Toggle(ctx, id)
	if !found {
		return false, false, err
	}
	s.logPersist(err, "toggle", id)
	s.surface.SetCompleted(id, completed)
	return completed, true, err
}

// Delete removes the task with id and its row. Unknown ids are ignored.
func (s *Synchronizer) Delete(ctx context.Context, id int64) (found bool, err error) {
	found, err = s.store.Delete(ctx, id)
	s.logPersist(err, "delete", id)
	if found {
		s.surface.RemoveRow(id)
	}
	return found, err
}

func (s *Synchronizer) logPersist(err error, op string, id int64) {
	if err != nil {
		s.logger.Error("Task list not saved", "op", op, "id", id, "err", err)
	}
}
