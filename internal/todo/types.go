package todo

import (
	"encoding/json"
	"fmt"
)

// DefaultKey is the storage key the task list is persisted under.
const DefaultKey = "todos"

// Task represents a single item in the list.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// IsZero returns true if the task has no ID.
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// PersistError reports a failed write of the task list. The in-memory
// mutation that triggered the write has already been applied.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Encode serializes tasks in the stored format. A nil slice encodes as [].
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("marshal tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored value. JSON null decodes as an empty list.
func Decode(value string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
