package kv

import "context"

// Memory is a map-backed Storage. It is not persistent and exists for tests
// and throwaway sessions.
type Memory struct {
	values map[string]string

	// SetErr, when non-nil, is returned by every Set without storing.
	SetErr error
	// GetErr, when non-nil, is returned by every Get.
	GetErr error

	// Writes counts successful Set calls.
	Writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	m.Writes++
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
