package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from TASKLIST_* environment variables and
// records them in sources.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setInt := func(env, field string, target *int) {
		if v := os.Getenv(env); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				*target = i
				sources[field] = SourceEnv
			}
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("TASKLIST_PROFILE", "profile", &cfg.Profile)
	setString("TASKLIST_DATA_DIR", "data_dir", &cfg.DataDir)

	setString("TASKLIST_STORAGE", "storage.backend", &cfg.Storage.Backend)
	setString("TASKLIST_STORAGE_PATH", "storage.path", &cfg.Storage.Path)
	setString("TASKLIST_STORAGE_KEY", "storage.key", &cfg.Storage.Key)
	setString("TASKLIST_REDIS_ADDR", "storage.redis_addr", &cfg.Storage.RedisAddr)
	setString("TASKLIST_REDIS_PASSWORD", "storage.redis_password", &cfg.Storage.RedisPassword)
	setInt("TASKLIST_REDIS_DB", "storage.redis_db", &cfg.Storage.RedisDB)
	setString("TASKLIST_REDIS_PREFIX", "storage.redis_prefix", &cfg.Storage.RedisPrefix)

	// Logging configuration
	setString("TASKLIST_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TASKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)
}
