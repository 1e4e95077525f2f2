package config

import (
	"os"
	"path/filepath"

	"github.com/nibzard/tasklist-go/internal/appdir"
)

// findProjectConfigFile returns the first of tasklist.toml and
// .tasklist.toml present in the working directory.
func findProjectConfigFile() string {
	return firstExisting(appdir.ConfigFile, appdir.HiddenConfigFile)
}

// findUserConfigFile returns $TASKLIST_CONFIG when it names an existing
// file. Without it, ~/.tasklist/tasklist.toml is preferred over
// <UserConfigDir>/tasklist/tasklist.toml.
func findUserConfigFile() string {
	if explicit := os.Getenv("TASKLIST_CONFIG"); explicit != "" {
		return firstExisting(resolvePath("", explicit))
	}

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, appdir.ConfigPath(home))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "tasklist", appdir.ConfigFile))
	}
	return firstExisting(candidates...)
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// ConfigFile returns the most specific config file that was read, or an
// empty string when only defaults, env and flags were used.
func (cws *ConfigWithSources) ConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
