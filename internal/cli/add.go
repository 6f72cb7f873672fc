package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// NewAddCmd creates the 'add' command for creating custom exercises.
//
// Adding is idempotent: a name that normalizes to an existing exercise
// returns that exercise instead of creating a duplicate.
func NewAddCmd() *cobra.Command {
	var (
		equipment  string
		muscles    []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom exercise",
		Long: `Create a user exercise that is searchable alongside the catalog.

Names are compared case- and punctuation-insensitively, so adding
"zercher squat" twice returns the same exercise.`,
		Example: `  liftsearch add Zercher Squat
  liftsearch add "Landmine Press" --equipment barbell --muscle shoulders`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := catalog.Tags{Equipment: equipment, PrimaryMuscles: muscles}
			return runAdd(cmd, strings.Join(args, " "), tags, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&equipment, "equipment", "e", "", "Equipment used")
	cmd.Flags().StringSliceVarP(&muscles, "muscle", "m", nil, "Primary muscles worked")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runAdd(cmd *cobra.Command, name string, tags catalog.Tags, jsonOutput bool) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	_, existed := e.Find(strings.TrimSpace(name))

	ex, err := e.AddExerciseWithTags(name, tags)
	if err != nil {
		return fmt.Errorf("failed to add exercise: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, ex)
	}

	if existed {
		fmt.Fprintf(out, "Already exists: %s [%s]\n", ex.Name, ex.ID)
		return nil
	}
	fmt.Fprintf(out, "✓ Added %s [%s]\n", colorGreen(out, ex.Name), ex.ID)
	return nil
}
