// Package config tests configuration loading.
package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasklist-go/internal/kv"
)

var tasklistEnv = []string{
	"TASKLIST_CONFIG",
	"TASKLIST_PROFILE",
	"TASKLIST_DATA_DIR",
	"TASKLIST_STORAGE",
	"TASKLIST_STORAGE_PATH",
	"TASKLIST_STORAGE_KEY",
	"TASKLIST_REDIS_ADDR",
	"TASKLIST_REDIS_PASSWORD",
	"TASKLIST_REDIS_DB",
	"TASKLIST_REDIS_PREFIX",
	"TASKLIST_LOG_DIR",
	"TASKLIST_LOG_LEVEL",
	"TASKLIST_LOG_FORMAT",
	"TASKLIST_LOG_TIMESTAMPS",
	"TASKLIST_LOG_CALLER",
}

// isolate points HOME and the XDG config dir at temp dirs, clears
// TASKLIST_* variables and moves into an empty project directory.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range tasklistEnv {
		t.Setenv(name, "")
	}
	t.Chdir(project)
	return home, project
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.Storage.Backend != DefaultStorageBackend {
		t.Errorf("Storage.Backend: got %q, want %q", cfg.Storage.Backend, DefaultStorageBackend)
	}
	if cfg.Storage.Key != DefaultStorageKey {
		t.Errorf("Storage.Key: got %q, want %q", cfg.Storage.Key, DefaultStorageKey)
	}
	if cfg.Profile != "default" {
		t.Errorf("Profile: got %q, want default", cfg.Profile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.Keys != DefaultKeys() {
		t.Errorf("Keys: got %+v, want %+v", cfg.Keys, DefaultKeys())
	}
}

func TestLoadDefaults(t *testing.T) {
	home, project := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	wantData := filepath.Join(home, ".tasklist")
	if cfg.DataDir != wantData {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, wantData)
	}
	if want := filepath.Join(wantData, "default.json"); cfg.Storage.Path != want {
		t.Errorf("Storage.Path: got %q, want %q", cfg.Storage.Path, want)
	}
	if want := filepath.Join(home, ".tasklist", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	if cfg.Storage.RedisPrefix != "tasklist:default:" {
		t.Errorf("Storage.RedisPrefix: got %q, want tasklist:default:", cfg.Storage.RedisPrefix)
	}
	if !samePath(t, cfg.ProjectRoot, project) {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, project)
	}
	if len(cws.Files) != 0 {
		t.Errorf("Files: got %v, want none", cws.Files)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("Sources[%s]: got %q, want default", field, cws.Sources[field])
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLIST_PROFILE", "work")
	t.Setenv("TASKLIST_STORAGE", "SQLite3")
	t.Setenv("TASKLIST_REDIS_DB", "3")
	t.Setenv("TASKLIST_LOG_TIMESTAMPS", "yes")
	t.Setenv("TASKLIST_STORAGE_KEY", "inbox")

	cfg := &Config{}
	setDefaults(cfg)
	sources := make(map[string]ConfigSource)
	loadFromEnv(cfg, sources)

	if cfg.Profile != "work" {
		t.Errorf("Profile: got %q, want work", cfg.Profile)
	}
	if cfg.Storage.Backend != "SQLite3" {
		t.Errorf("Storage.Backend: got %q, want SQLite3", cfg.Storage.Backend)
	}
	if cfg.Storage.RedisDB != 3 {
		t.Errorf("Storage.RedisDB: got %d, want 3", cfg.Storage.RedisDB)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	if cfg.Storage.Key != "inbox" {
		t.Errorf("Storage.Key: got %q, want inbox", cfg.Storage.Key)
	}
	for _, field := range []string{"profile", "storage.backend", "storage.redis_db", "log_timestamps", "storage.key"} {
		if sources[field] != SourceEnv {
			t.Errorf("Sources[%s]: got %q, want environment", field, sources[field])
		}
	}
	if _, ok := sources["log_level"]; ok {
		t.Error("log_level should not be marked as coming from the environment")
	}
}

func TestLoadFromEnvIgnoresBadInt(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLIST_REDIS_DB", "three")

	cfg := &Config{}
	setDefaults(cfg)
	sources := make(map[string]ConfigSource)
	loadFromEnv(cfg, sources)

	if cfg.Storage.RedisDB != 0 {
		t.Errorf("Storage.RedisDB: got %d, want 0", cfg.Storage.RedisDB)
	}
	if _, ok := sources["storage.redis_db"]; ok {
		t.Error("storage.redis_db should keep its default source")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "tasklist.toml")
	writeFile(t, configFile, `profile = "home"
log_level = "debug"
colour = "blue"

[storage]
backend = "redis"
redis_addr = "localhost:6380"

[keys]
toggle = "x"
`)

	cws := &ConfigWithSources{Config: &Config{}, Sources: make(map[string]ConfigSource)}
	setDefaults(cws.Config)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}
	if err := loadConfigFile(cws, configFile, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	cfg := cws.Config
	if cfg.Profile != "home" {
		t.Errorf("Profile: got %q, want home", cfg.Profile)
	}
	if cfg.Storage.Backend != "redis" {
		t.Errorf("Storage.Backend: got %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != DefaultStorageKey {
		t.Errorf("Storage.Key: got %q, want default kept", cfg.Storage.Key)
	}
	if cfg.Keys.Toggle != "x" || cfg.Keys.Delete != "d" {
		t.Errorf("Keys: got %+v, want toggle=x and delete kept", cfg.Keys)
	}

	for field, want := range map[string]ConfigSource{
		"profile":            SourceProjFile,
		"storage.backend":    SourceProjFile,
		"storage.redis_addr": SourceProjFile,
		"keys.toggle":        SourceProjFile,
		"storage.key":        SourceDefault,
	} {
		if got := cws.Sources[field]; got != want {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, want)
		}
	}
	if _, ok := cws.Sources["storage"]; ok {
		t.Error("table names should not be tracked as fields")
	}

	if len(cws.Warnings) != 1 || !strings.Contains(cws.Warnings[0], "colour") {
		t.Errorf("Warnings: got %v, want one warning about colour", cws.Warnings)
	}
	if len(cws.Files) != 1 || cws.Files[0] != configFile {
		t.Errorf("Files: got %v, want [%s]", cws.Files, configFile)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "tasklist.toml")
	writeFile(t, configFile, "profile = \n")

	cws := &ConfigWithSources{Config: &Config{}, Sources: make(map[string]ConfigSource)}
	err := loadConfigFile(cws, configFile, SourceUserFile)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr toml.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error type: got %T, want toml.ParseError", err)
	}
}

func TestLoadPriority(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), `profile = "user"
log_level = "warn"
log_format = "json"

[storage]
backend = "sqlite"
`)
	writeFile(t, filepath.Join(project, "tasklist.toml"), `log_level = "debug"
`)
	t.Setenv("TASKLIST_LOG_FORMAT", "logfmt")

	cws, err := LoadWithSources(newFlagSet(), []string{"-profile", "flagged"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.Profile != "flagged" {
		t.Errorf("Profile: got %q, want flagged", cfg.Profile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
	if cfg.Storage.Backend != kv.BackendSQLite {
		t.Errorf("Storage.Backend: got %q, want sqlite", cfg.Storage.Backend)
	}
	if want := filepath.Join(home, ".tasklist", "flagged.db"); cfg.Storage.Path != want {
		t.Errorf("Storage.Path: got %q, want %q", cfg.Storage.Path, want)
	}

	for field, want := range map[string]ConfigSource{
		"profile":         SourceFlag,
		"log_level":       SourceProjFile,
		"log_format":      SourceEnv,
		"storage.backend": SourceUserFile,
		"storage.key":     SourceDefault,
	} {
		if got := cws.Sources[field]; got != want {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, want)
		}
	}
	if len(cws.Files) != 2 {
		t.Fatalf("Files: got %v, want user and project files", cws.Files)
	}
	if got := cws.ConfigFile(); got != "tasklist.toml" {
		t.Errorf("ConfigFile: got %q, want tasklist.toml", got)
	}
}

func TestExplicitConfigPath(t *testing.T) {
	home, _ := isolate(t)
	explicit := filepath.Join(home, "elsewhere", "custom.toml")
	writeFile(t, explicit, `profile = "custom"`)
	writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), `profile = "ignored"`)
	t.Setenv("TASKLIST_CONFIG", explicit)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != "custom" {
		t.Errorf("Profile: got %q, want custom", cfg.Profile)
	}
}

func TestXDGConfigFallback(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "tasklist", "tasklist.toml"), `profile = "xdg"`)

	if got := findUserConfigFile(); got == "" {
		t.Skip("no OS config dir on this platform")
	}
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != "xdg" {
		t.Errorf("Profile: got %q, want xdg", cfg.Profile)
	}
}

func TestParseFlags(t *testing.T) {
	isolate(t)
	cfg := &Config{}
	setDefaults(cfg)
	sources := make(map[string]ConfigSource)

	args := []string{"-storage", "redis", "-redis-addr", "127.0.0.1:6379", "-redis-db", "2", "-log-caller", "add", "milk"}
	fs := newFlagSet()
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.Storage.Backend != "redis" {
		t.Errorf("Storage.Backend: got %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.RedisAddr != "127.0.0.1:6379" {
		t.Errorf("Storage.RedisAddr: got %q", cfg.Storage.RedisAddr)
	}
	if cfg.Storage.RedisDB != 2 {
		t.Errorf("Storage.RedisDB: got %d, want 2", cfg.Storage.RedisDB)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "add" {
		t.Errorf("Args: got %v, want [add milk]", got)
	}
	if sources["storage.redis_db"] != SourceFlag {
		t.Errorf("Sources[storage.redis_db]: got %q, want flag", sources["storage.redis_db"])
	}
	if _, ok := sources["profile"]; ok {
		t.Error("unset flags should not be tracked")
	}
}

func TestFinalizeConfig(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
		wantErr  bool
	}{
		{
			name:     "file backend derives json path",
			mutate:   func(c *Config) {},
			wantPath: filepath.Join(root, "data", "default.json"),
		},
		{
			name:     "sqlite alias derives db path",
			mutate:   func(c *Config) { c.Storage.Backend = "db" },
			wantPath: filepath.Join(root, "data", "default.db"),
		},
		{
			name:     "relative path resolves against project root",
			mutate:   func(c *Config) { c.Storage.Path = "tasks.json" },
			wantPath: filepath.Join(root, "tasks.json"),
		},
		{
			name:     "redis has no path",
			mutate:   func(c *Config) { c.Storage.Backend = "redis" },
			wantPath: "",
		},
		{
			name:     "profile scopes path",
			mutate:   func(c *Config) { c.Profile = "a/b" },
			wantPath: filepath.Join(root, "data", "a_b.json"),
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "etcd" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			cfg.ProjectRoot = root
			cfg.DataDir = "data"
			tt.mutate(cfg)

			err := finalizeConfig(cfg)
			if tt.wantErr {
				if !errors.Is(err, kv.ErrUnknownBackend) {
					t.Fatalf("error: got %v, want ErrUnknownBackend", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("finalizeConfig: %v", err)
			}
			if cfg.Storage.Path != tt.wantPath {
				t.Errorf("Storage.Path: got %q, want %q", cfg.Storage.Path, tt.wantPath)
			}
		})
	}
}

func TestFinalizeFillsKeysAndKey(t *testing.T) {
	cfg := &Config{ProjectRoot: t.TempDir(), Storage: StorageConfig{Backend: "memory", Key: "  "}}
	cfg.Keys.Quit = "ctrl+q"

	if err := finalizeConfig(cfg); err != nil {
		t.Fatalf("finalizeConfig: %v", err)
	}
	if cfg.Storage.Key != DefaultStorageKey {
		t.Errorf("Storage.Key: got %q, want %q", cfg.Storage.Key, DefaultStorageKey)
	}
	if cfg.Keys.Quit != "ctrl+q" {
		t.Errorf("Keys.Quit: got %q, want ctrl+q", cfg.Keys.Quit)
	}
	if cfg.Keys.Toggle != " " {
		t.Errorf("Keys.Toggle: got %q, want space", cfg.Keys.Toggle)
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{
		Backend:     "redis",
		RedisAddr:   "h:1",
		RedisDB:     4,
		RedisPrefix: "p:",
	}}
	opts := cfg.StorageOptions()
	if opts.Backend != "redis" || opts.RedisAddr != "h:1" || opts.RedisDB != 4 || opts.RedisPrefix != "p:" {
		t.Errorf("StorageOptions: got %+v", opts)
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		t.Errorf("Undecoded: got %v, want none", undecoded)
	}
	if cfg.Storage.Backend != "file" || cfg.Keys != DefaultKeys() {
		t.Errorf("ExampleConfig: got %+v", cfg)
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKLIST_TEST_DIR", "/srv/tasks")

	tests := []struct {
		root string
		in   string
		want string
	}{
		{"/proj", "", ""},
		{"", "~", home},
		{"/proj", "~/x/y", filepath.Join(home, "x", "y")},
		{"/proj", "$TASKLIST_TEST_DIR/a", "/srv/tasks/a"},
		{"/proj", "/abs/path", "/abs/path"},
		{"/proj", "data/tasks.db", filepath.Join("/proj", "data", "tasks.db")},
		{"", "data/tasks.db", "data/tasks.db"},
		{"/proj", "~user/x", filepath.Join("/proj", "~user", "x")},
	}
	for _, tt := range tests {
		if got := resolvePath(tt.root, tt.in); got != tt.want {
			t.Errorf("resolvePath(%q, %q): got %q, want %q", tt.root, tt.in, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for in, want := range map[string]bool{
		"1": true, "true": true, "YES": true, " on ": true,
		"0": false, "false": false, "": false, "nope": false,
	} {
		if got := boolFromString(in); got != want {
			t.Errorf("boolFromString(%q): got %v, want %v", in, got, want)
		}
	}
}

func samePath(t *testing.T, a, b string) bool {
	t.Helper()
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		return a == b
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		return a == b
	}
	return ra == rb
}
