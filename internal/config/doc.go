// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file ($TASKLIST_CONFIG, ~/.tasklist/tasklist.toml or the OS config directory)
// 3. Project config file (tasklist.toml or .tasklist.toml in the current directory)
// 4. Environment variables (TASKLIST_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// Without $TASKLIST_CONFIG, ~/.tasklist/tasklist.toml is preferred over
// tasklist/tasklist.toml under os.UserConfigDir ($XDG_CONFIG_HOME or
// ~/.config on Linux).
//
// Storage paths left empty are derived from data_dir and profile, so two
// profiles never share a task list.
package config
