package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasklist-go/internal/appdir"
	"github.com/nibzard/tasklist-go/internal/kv"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cws, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cws, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg, cws.Sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	return []string{
		"profile",
		"data_dir",
		"storage.backend",
		"storage.path",
		"storage.key",
		"storage.redis_addr",
		"storage.redis_password",
		"storage.redis_db",
		"storage.redis_prefix",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"keys.up",
		"keys.down",
		"keys.toggle",
		"keys.delete",
		"keys.focus",
		"keys.quit",
		"keys.help",
	}
}

// loadConfigFile decodes a TOML file over cws.Config and records which
// keys it set.
func loadConfigFile(cws *ConfigWithSources, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	for _, key := range md.Keys() {
		name := key.String()
		if _, known := cws.Sources[name]; known {
			cws.Sources[name] = source
		}
	}
	for _, key := range md.Undecoded() {
		cws.Warnings = append(cws.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	cws.Files = append(cws.Files, path)
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Profile = appdir.DefaultProfile
	cfg.DataDir = DefaultDataDir
	cfg.Storage = StorageConfig{
		Backend: DefaultStorageBackend,
		Key:     DefaultStorageKey,
	}
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Keys = DefaultKeys()
}

// finalizeConfig computes derived values and validates the storage choice.
func finalizeConfig(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.Profile = appdir.ProfileName(cfg.Profile)
	cfg.DataDir = resolvePath(cfg.ProjectRoot, cfg.DataDir)
	cfg.LogDir = resolvePath(cfg.ProjectRoot, cfg.LogDir)

	cfg.Storage.Backend = kv.NormalizeBackend(cfg.Storage.Backend)
	if !isKnownBackend(cfg.Storage.Backend) {
		return fmt.Errorf("storage backend %q: %w (expected one of %s)",
			cfg.Storage.Backend, kv.ErrUnknownBackend, strings.Join(kv.Backends(), ", "))
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		cfg.Storage.Key = DefaultStorageKey
	}

	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case kv.BackendFile:
			cfg.Storage.Path = appdir.DataFile(cfg.DataDir, cfg.Profile)
		case kv.BackendSQLite:
			cfg.Storage.Path = appdir.DatabaseFile(cfg.DataDir, cfg.Profile)
		}
	} else {
		cfg.Storage.Path = resolvePath(cfg.ProjectRoot, cfg.Storage.Path)
	}
	if cfg.Storage.RedisPrefix == "" {
		cfg.Storage.RedisPrefix = appdir.RedisPrefix(cfg.Profile)
	}

	defaults := DefaultKeys()
	fillKey(&cfg.Keys.Up, defaults.Up)
	fillKey(&cfg.Keys.Down, defaults.Down)
	fillKey(&cfg.Keys.Toggle, defaults.Toggle)
	fillKey(&cfg.Keys.Delete, defaults.Delete)
	fillKey(&cfg.Keys.Focus, defaults.Focus)
	fillKey(&cfg.Keys.Quit, defaults.Quit)
	fillKey(&cfg.Keys.Help, defaults.Help)

	return nil
}

// StorageOptions converts the storage section for kv.Open.
func (c *Config) StorageOptions() kv.Options {
	return kv.Options{
		Backend:       c.Storage.Backend,
		Path:          c.Storage.Path,
		RedisAddr:     c.Storage.RedisAddr,
		RedisPassword: c.Storage.RedisPassword,
		RedisDB:       c.Storage.RedisDB,
		RedisPrefix:   c.Storage.RedisPrefix,
	}
}

func isKnownBackend(name string) bool {
	for _, b := range kv.Backends() {
		if b == name {
			return true
		}
	}
	return false
}

func fillKey(key *string, def string) {
	if *key == "" {
		*key = def
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
