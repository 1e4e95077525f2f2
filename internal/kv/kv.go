// Package kv provides the durable key-value storage that task lists persist to.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage is a synchronous string key-value store.
//
// Get reports ok=false when the key has never been set. Set replaces any
// prior value in a single write.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and configures a backend.
type Options struct {
	Backend string

	// Path is the file or database path for the file and sqlite backends.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisPrefix namespaces keys, e.g. "tasklist:" + profile.
	RedisPrefix  string
	RedisTimeout time.Duration
}

// Backends returns the backend names Open understands.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}
}

// NormalizeBackend lowercases a backend name and maps aliases.
func NormalizeBackend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "json":
		return BackendFile
	case "sqlite3", "db":
		return BackendSQLite
	case "mem":
		return BackendMemory
	}
	return name
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch backend := NormalizeBackend(opts.Backend); backend {
	case BackendFile:
		return OpenFile(opts.Path)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		return OpenRedis(ctx, opts)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownBackend, opts.Backend, strings.Join(Backends(), ", "))
	}
}
