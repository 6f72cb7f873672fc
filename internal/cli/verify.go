package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/config"
)

// NewVerifyCmd creates the 'verify' command for verifying configuration.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify configuration, catalog and storage",
		Long: `Verify that the configuration is valid, the catalog loads and the
learning store opens.`,
		Example: `  liftsearch verify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd)
		},
	}

	return cmd
}

// runVerify validates the configuration and opens the engine once.
func runVerify(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, path, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	fmt.Fprintf(out, "✓ Config file: %s\n", path)

	source := cfg.Catalog.Source
	if source == "" {
		source = "built-in"
	}

	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	stats := e.Stats()
	fmt.Fprintf(out, "✓ Catalog (%s): %d exercises\n", source, stats.SystemExercises)
	fmt.Fprintf(out, "✓ Custom exercises: %d\n", stats.UserExercises)

	if e.LearningEnabled() {
		fmt.Fprintf(out, "✓ Learning store: %s\n", cfg.Storage.Backend)
	} else if cfg.Learning.Enabled {
		fmt.Fprintf(out, "✗ Learning store: %s failed to open, learning disabled\n", cfg.Storage.Backend)
	} else {
		fmt.Fprintln(out, "- Learning: disabled in config")
	}

	if stats.Indexed > 0 {
		fmt.Fprintf(out, "✓ Instruction index: %d exercises\n", stats.Indexed)
	} else {
		fmt.Fprintln(out, "✗ Instruction index: empty")
	}

	return nil
}
