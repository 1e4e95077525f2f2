package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for
// each field, keyed by its TOML name (e.g. "storage.backend").
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
	// Warnings lists keys present in config files that were not recognized.
	Warnings []string
}

// Default values.
const (
	DefaultStorageBackend = "file"
	DefaultStorageKey     = "todos"
	DefaultDataDir        = "~/.tasklist"
	DefaultLogDir         = "~/.tasklist/logs"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Profile scopes storage the way an origin scopes browser storage.
	Profile string `toml:"profile"`
	DataDir string `toml:"data_dir"`

	Storage StorageConfig `toml:"storage"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	Keys KeysConfig `toml:"keys"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// StorageConfig selects the durable key-value backend.
type StorageConfig struct {
	Backend string `toml:"backend"` // file, sqlite, redis, memory
	Path    string `toml:"path"`    // file/sqlite path; derived from data_dir and profile when empty
	Key     string `toml:"key"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"` // derived from profile when empty
}

// KeysConfig holds TUI key bindings for the task list.
type KeysConfig struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Toggle string `toml:"toggle"`
	Delete string `toml:"delete"`
	Focus  string `toml:"focus"`
	Quit   string `toml:"quit"`
	Help   string `toml:"help"`
}

// DefaultKeys returns the built-in key bindings.
func DefaultKeys() KeysConfig {
	return KeysConfig{
		Up:     "k",
		Down:   "j",
		Toggle: " ",
		Delete: "d",
		Focus:  "tab",
		Quit:   "q",
		Help:   "?",
	}
}
