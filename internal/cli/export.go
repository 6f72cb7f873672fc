package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		format      string
		output      string
		withAliases bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the merged catalog for grep/jq or as a catalog source",
		Long: `Write every catalog and custom exercise to a file.

The output uses the same document shape the catalog loader reads, so a JSON
or YAML export can be set as catalog.source in ~/.liftsearch.json.
With --with-aliases, learned and manual aliases are folded into each entry.

Default output: ~/.liftsearch-catalog.jsonl
Default format: JSONL (one exercise per line)`,
		Example: `  # Export to default location
  liftsearch export

  # Export as YAML including learned aliases
  liftsearch export --format yaml --with-aliases --output ./exercises.yaml

Grep usage examples:
  # Find barbell exercises
  grep '"equipment":"barbell"' ~/.liftsearch-catalog.jsonl | jq -r '.name'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, format, output, withAliases)
		},
	}

	cmd.Flags().StringVar(&format, "format", catalog.FormatJSONL, "Output format: json, jsonl or yaml")
	cmd.Flags().StringVar(&output, "output", "", "Output path (default: ~/.liftsearch-catalog.<format>)")
	cmd.Flags().BoolVar(&withAliases, "with-aliases", false, "Include stored aliases")

	return cmd
}

func runExport(cmd *cobra.Command, format, output string, withAliases bool) error {
	if output == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		output = filepath.Join(home, ".liftsearch-catalog."+format)
	}

	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	exercises := e.Exercises()
	if withAliases {
		exercises = e.ExercisesWithAliases()
	}

	// Acquire file lock to prevent concurrent writes
	lockFile, err := acquireFileLock(output)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer releaseFileLock(lockFile)

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := catalog.Encode(file, exercises, format); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d exercises to %s\n", len(exercises), output)
	return nil
}

// acquireFileLock acquires an exclusive lock next to path.
func acquireFileLock(path string) (*os.File, error) {
	lockPath := path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	// Non-blocking: a second export fails fast.
	err = unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		lockFile.Close()
		return nil, fmt.Errorf("failed to acquire lock (another export in progress?): %w", err)
	}

	return lockFile, nil
}

// releaseFileLock releases the file lock and removes the lock file.
func releaseFileLock(lockFile *os.File) error {
	if lockFile == nil {
		return nil
	}

	lockPath := lockFile.Name()
	unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	lockFile.Close()

	return os.Remove(lockPath)
}
