package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/kv"
)

// LoadState describes what Load found in storage.
type LoadState int

const (
	// LoadedEmpty means no value was stored under the key.
	LoadedEmpty LoadState = iota
	// LoadedValue means a stored list was decoded.
	LoadedValue
	// LoadedReset means the stored value could not be read or decoded and
	// the list was reset to empty.
	LoadedReset
)

func (s LoadState) String() string {
	switch s {
	case LoadedEmpty:
		return "empty"
	case LoadedValue:
		return "loaded"
	case LoadedReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ErrUnreadable is wrapped by the PersistError of every mutation made after
// Load failed to read storage. Such a store never writes, so the stored
// list survives a transient read failure.
var ErrUnreadable = errors.New("stored task list could not be read")

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the default clock-based generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger sets the logger for load and persist diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the ordered task list. It is not safe for concurrent use.
type Store struct {
	storage kv.Storage
	key     string
	ids     IDGenerator
	logger  *log.Logger
	tasks   []Task

	// readErr is the storage error from the last Load, if any.
	readErr error
}

// NewStore returns an empty store backed by storage. Call Load to read the
// persisted list.
func NewStore(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		ids:     NewClockIDs(nil),
		logger:  log.New(io.Discard),
		tasks:   []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Writable reports whether mutations are written to storage. It is false
// after a Load whose read failed.
func (s *Store) Writable() bool {
	return s.readErr == nil
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the persisted one. A value that
// cannot be decoded resets the list and is overwritten by the next
// mutation. A failed read also resets the list, but leaves the store
// read-only until a later Load succeeds.
func (s *Store) Load(ctx context.Context) LoadState {
	s.tasks = []Task{}
	s.readErr = nil

	value, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.readErr = err
		s.logger.Warn("Reading task list failed, changes will not be saved", "key", s.key, "err", err)
		return LoadedReset
	}
	if !ok {
		s.logger.Debug("No stored task list", "key", s.key)
		return LoadedEmpty
	}

	tasks, err := Decode(value)
	if err != nil {
		s.logger.Warn("Stored task list is malformed, starting empty", "key", s.key, "err", err)
		return LoadedReset
	}
	s.tasks = tasks

	var maxID int64
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	s.ids.Seed(maxID)

	s.logger.Debug("Loaded task list", "key", s.key, "tasks", len(tasks))
	return LoadedValue
}

// Tasks returns a copy of the list in order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id int64) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Add appends a task with the trimmed text. Blank text is ignored and
// returns a nil task and nil error.
func (s *Store) Add(ctx context.Context, text string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	id := s.ids.NextID()
	for s.index(id) >= 0 {
		id = s.ids.NextID()
	}
	task := Task{ID: id, Text: text}
	s.tasks = append(s.tasks, task)

	return &task, s.persist(ctx)
}

// Toggle flips the completed flag of the task with id and returns the new
// value. found is false, and nothing is written, when no task has id.
func (s *Store) Toggle(ctx context.Context, id int64) (completed, found bool, err error) {
	i := s.index(id)
	if i < 0 {
		return false, false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i].Completed, true, s.persist(ctx)
}

// Delete removes the task with id, keeping the order of the rest. The list
// is written back whether or not a task matched.
func (s *Store) Delete(ctx context.Context, id int64) (found bool, err error) {
	if i := s.index(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		found = true
	}
	return found, s.persist(ctx)
}

func (s *Store) index(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	if s.readErr != nil {
		return &PersistError{Key: s.key, Err: fmt.Errorf("%w: %w", ErrUnreadable, s.readErr)}
	}
	value, err := Encode(s.tasks)
	if err != nil {
		return &PersistError{Key: s.key, Err: err}
	}
	if err := s.storage.Set(ctx, s.key, value); err != nil {
		s.logger.Warn("Persisting task list failed", "key", s.key, "err", err)
		return &PersistError{Key: s.key, Err: err}
	}
	return nil
}
