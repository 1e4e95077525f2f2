package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Storage profile; each profile keeps its own task list
profile = "default"

# Data directory (supports ~ and $VAR; relative paths start at the project root)
data_dir = "~/.tasklist"

# Log directory for TUI session logs
log_dir = "~/.tasklist/logs"

# Logging: debug, info, warn, error
log_level = "info"
# Format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false

[storage]
# Backend: file, sqlite, redis, memory
backend = "file"
# Path for file and sqlite backends (derived from data_dir and profile when empty)
# path = "~/.tasklist/default.json"
# Key under which the task list is stored
key = "todos"

# Redis backend
# redis_addr = "localhost:6379"
# redis_password = ""
# redis_db = 0
# redis_prefix = "tasklist:default:"

# TUI key bindings
[keys]
up = "k"
down = "j"
toggle = " "
delete = "d"
focus = "tab"
quit = "q"
help = "?"
`
}
