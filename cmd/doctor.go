package cmd

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/kv"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// doctorCommand reports where each setting came from, whether the storage
// backend is reachable and whether the stored value is well formed. It
// never modifies the stored value.
func doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Show every setting, including defaults")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	cfg := cws.Config

	fmt.Fprintln(stdout, "tasklist doctor")
	fmt.Fprintln(stdout, "===============")
	fmt.Fprintln(stdout)

	allOK := true

	// Config files and sources
	fmt.Fprintln(stdout, "Config:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  (no config file; using defaults)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  file: %s\n", f)
	}
	for _, w := range cws.Warnings {
		fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
	}
	fields := make([]string, 0, len(cws.Sources))
	for field, source := range cws.Sources {
		if *verbose || source != config.SourceDefault {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(stdout, "  %-24s (%s)\n", field, cws.Sources[field])
	}
	fmt.Fprintln(stdout)

	// Storage
	fmt.Fprintln(stdout, "Storage:")
	fmt.Fprintf(stdout, "  Profile: %s\n", cfg.Profile)
	fmt.Fprintf(stdout, "  Backend: %s\n", cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case kv.BackendFile, kv.BackendSQLite:
		fmt.Fprintf(stdout, "  Path:    %s\n", cfg.Storage.Path)
	case kv.BackendRedis:
		fmt.Fprintf(stdout, "  Address: %s (db %d, prefix %q)\n", cfg.Storage.RedisAddr, cfg.Storage.RedisDB, cfg.Storage.RedisPrefix)
	}
	fmt.Fprintf(stdout, "  Key:     %s\n", cfg.Storage.Key)

	storage, err := kv.Open(ctx, cfg.StorageOptions())
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Open: %v\n", err)
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "⚠️  Some checks failed.")
		return fmt.Errorf("doctor checks failed")
	}
	defer storage.Close()

	value, ok, err := storage.Get(ctx, cfg.Storage.Key)
	switch {
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Read: %v\n", err)
		allOK = false
	case !ok:
		fmt.Fprintln(stdout, "  ✅ Reachable (no task list stored yet)")
	default:
		fmt.Fprintf(stdout, "  ✅ Reachable (%d bytes stored)\n", len(value))
	}
	fmt.Fprintln(stdout)

	// Stored value
	if err == nil && ok {
		fmt.Fprintln(stdout, "Stored value:")
		result := todo.ValidateValue(value)
		if result.Valid {
			tasks, _ := todo.Decode(value)
			done := 0
			for _, t := range tasks {
				if t.Completed {
					done++
				}
			}
			fmt.Fprintf(stdout, "  ✅ Valid (%d tasks, %d completed)\n", len(tasks), done)
		} else {
			allOK = false
			for _, verr := range result.Errors {
				fmt.Fprintf(stdout, "  ❌ %v\n", verr)
			}
			if result.Decodable {
				fmt.Fprintln(stdout, "  The list still loads; fix the entries above to keep ids and text reliable.")
			} else {
				fmt.Fprintln(stdout, "  The list cannot be decoded and loads as empty. The next change overwrites it.")
			}
		}
		fmt.Fprintln(stdout)
	}

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
