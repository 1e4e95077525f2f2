package config

import "flag"

// flagFields maps flag names to source field names.
var flagFields = map[string]string{
	"profile":        "profile",
	"data-dir":       "data_dir",
	"storage":        "storage.backend",
	"storage-path":   "storage.path",
	"key":            "storage.key",
	"redis-addr":     "storage.redis_addr",
	"redis-db":       "storage.redis_db",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args into cfg and
// records explicitly set flags in sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Storage profile")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")

	// Storage
	fs.StringVar(&cfg.Storage.Backend, "storage", cfg.Storage.Backend, "Storage backend (file, sqlite, redis, memory)")
	fs.StringVar(&cfg.Storage.Path, "storage-path", cfg.Storage.Path, "Storage file or database path")
	fs.StringVar(&cfg.Storage.Key, "key", cfg.Storage.Key, "Storage key for the task list")
	fs.StringVar(&cfg.Storage.RedisAddr, "redis-addr", cfg.Storage.RedisAddr, "Redis address (host:port)")
	fs.IntVar(&cfg.Storage.RedisDB, "redis-db", cfg.Storage.RedisDB, "Redis database number")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
