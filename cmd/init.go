package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/tasklist-go/internal/appdir"
	"github.com/nibzard/tasklist-go/internal/config"
)

// initCommand writes the example config to the project or user config path.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	user := fs.Bool("user", false, "Write the user config instead of the project config")
	force := fs.Bool("force", false, "Overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	path := filepath.Join(cfg.ProjectRoot, appdir.ConfigFile)
	if *user {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		path = appdir.ConfigPath(home)
	}

	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(stdout, "Config already exists: %s (use -force to overwrite)\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
