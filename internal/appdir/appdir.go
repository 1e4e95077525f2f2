// Package appdir provides constants and path helpers for the tasklist state directory.
package appdir

import (
	"path/filepath"
	"strings"
)

const (
	// Dir is the name of the state directory under the user's home.
	Dir = ".tasklist"

	// ConfigFile is the config file name, both in the state dir and in a
	// project directory.
	ConfigFile = "tasklist.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tasklist.toml"

	// LogsDir is the log directory name inside the state dir.
	LogsDir = "logs"

	// DefaultProfile names the storage scope used when none is configured.
	DefaultProfile = "default"
)

// DirPath returns the state directory under home.
func DirPath(home string) string {
	return joinPath(home, "")
}

// ConfigPath returns the user config file path under home.
func ConfigPath(home string) string {
	return joinPath(home, ConfigFile)
}

// LogDirPath returns the default log directory under home.
func LogDirPath(home string) string {
	return joinPath(home, LogsDir)
}

// DataFile returns the file-backend storage path for a profile.
func DataFile(dataDir, profile string) string {
	return filepath.Join(dataDir, ProfileName(profile)+".json")
}

// DatabaseFile returns the sqlite-backend storage path for a profile.
func DatabaseFile(dataDir, profile string) string {
	return filepath.Join(dataDir, ProfileName(profile)+".db")
}

// RedisPrefix returns the default redis key prefix for a profile.
func RedisPrefix(profile string) string {
	return "tasklist:" + ProfileName(profile) + ":"
}

// ProfileName trims a profile name, replaces path separators and falls
// back to DefaultProfile when empty.
func ProfileName(profile string) string {
	profile = strings.TrimSpace(profile)
	profile = strings.NewReplacer("/", "_", "\\", "_").Replace(profile)
	if profile == "" || profile == "." || profile == ".." {
		return DefaultProfile
	}
	return profile
}

func joinPath(home, file string) string {
	if home == "" {
		home = "."
	}
	if file == "" {
		return filepath.Join(home, Dir)
	}
	return filepath.Join(home, Dir, file)
}
