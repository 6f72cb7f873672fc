package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/config"
	"github.com/khanglvm/liftsearch/internal/learning"
)

// newLearningStatusCmd shows learning statistics.
func newLearningStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			stats := e.Stats()
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, stats)
			}

			fmt.Fprintln(out, "Learning System Status")
			fmt.Fprintln(out, "======================")
			fmt.Fprintf(out, "Tracking enabled:  %v\n", stats.Learning.Enabled)
			fmt.Fprintf(out, "Catalog exercises: %d\n", stats.SystemExercises)
			fmt.Fprintf(out, "Custom exercises:  %d\n", stats.UserExercises)
			fmt.Fprintf(out, "Indexed for 'how': %d\n", stats.Indexed)
			fmt.Fprintf(out, "Selections:        %d across %d exercises\n", stats.Learning.Selections, stats.Learning.TrackedExercises)
			fmt.Fprintf(out, "Learned queries:   %d\n", stats.Learning.Queries)
			fmt.Fprintf(out, "Aliases:           %d\n", stats.Learning.Aliases)

			sources := make([]learning.Source, 0, len(stats.Learning.AliasesBySource))
			for src := range stats.Learning.AliasesBySource {
				sources = append(sources, src)
			}
			sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
			for _, src := range sources {
				fmt.Fprintf(out, "  %-8s %d\n", string(src)+":", stats.Learning.AliasesBySource[src])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// newLearningAliasesCmd lists the aliases of one exercise.
func newLearningAliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases <exercise>",
		Short: "List the aliases of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			ex, err := resolveExercise(e, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			aliases := e.Aliases(ex.ID)
			if len(aliases) == 0 {
				fmt.Fprintf(out, "No aliases for %s.\n", ex.Name)
				return nil
			}

			fmt.Fprintf(out, "Aliases for %s (%d):\n", ex.Name, len(aliases))
			for _, al := range aliases {
				fmt.Fprintf(out, "  %-30s %s\n", al.Text, al.Source)
			}
			return nil
		},
	}
}

// newLearningAliasCmd stores a manual alias.
func newLearningAliasCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "alias <exercise> <alias>",
		Short:   "Add a manual alias to an exercise",
		Example: `  liftsearch learning alias "Front Squat" zercher-ish`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			ex, err := resolveExercise(e, args[0])
			if err != nil {
				return err
			}

			al, err := e.AddAlias(ex.ID, args[1])
			if err != nil {
				return fmt.Errorf("failed to add alias: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %q now finds %s\n", al.Text, ex.Name)
			return nil
		},
	}
}

// newLearningExportCmd exports all learning data as JSON.
func newLearningExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export learning data as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			data := e.ExportLearning()
			if outputFile == "" {
				return writeJSON(cmd.OutOrStdout(), data)
			}

			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputFile, err)
			}
			defer f.Close()

			if err := writeJSON(f, data); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported learning data to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

// newLearningCleanupCmd drops signals of exercises no longer in the catalog.
func newLearningCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Drop signals of exercises that no longer exist",
		Long: `Remove aliases, usage and affinity records whose exercise is no longer
in the catalog, e.g. after switching catalog.source. Custom exercises are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			result := e.Cleanup(e.UserIDs())
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d orphaned learning records\n", result.Signals)
			return nil
		},
	}
}

// newLearningToggleCmd turns tracking on or off in the config file.
func newLearningToggleCmd(use string, enabled bool) *cobra.Command {
	short := "Turn off usage tracking"
	if enabled {
		short = "Turn on usage tracking"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfigFile()
			if err != nil {
				return err
			}

			cfg.Learning.Enabled = enabled
			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Learning %sd in %s\n", use, path)
			if v, ok := os.LookupEnv(config.EnvLearning); ok && v != "" {
				fmt.Fprintf(out, "Note: %s=%s overrides this setting\n", config.EnvLearning, v)
			}
			return nil
		},
	}
}
