package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/engine"
)

// NewInstructionsCmd creates the 'how' command for keyword search over
// exercise instructions.
func NewInstructionsCmd() *cobra.Command {
	var (
		equipment  string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "how <keywords>",
		Aliases: []string{"instructions"},
		Short:   "Search exercise instructions by keyword",
		Long: `Full-text search over exercise names and step-by-step instructions.

Only catalogs that ship instructions can be searched this way; the built-in
catalog has none, so point catalog.source at a richer catalog first.`,
		Example: `  liftsearch how hinge at the hips
  liftsearch how chest --equipment dumbbell --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstructions(cmd, strings.Join(args, " "), equipment, limit, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&equipment, "equipment", "e", "", "Only exercises using this equipment")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum results")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runInstructions(cmd *cobra.Command, query, equipment string, limit int, jsonOutput bool) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	hits, err := e.Instructions(query, equipment, limit)
	if errors.Is(err, engine.ErrInstructionsUnavailable) {
		return fmt.Errorf("%w: the instruction index failed to build, see warnings above", err)
	}
	if err != nil {
		return fmt.Errorf("instruction search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, hits)
	}

	if len(hits) == 0 {
		fmt.Fprintf(out, "No instructions mention %q.\n", query)
		return nil
	}

	for i, hit := range hits {
		fmt.Fprintf(out, "%d. %s  [%s]\n", i+1, colorGreen(out, hit.Name), hit.ExerciseID)
		for j, step := range hit.Instructions {
			fmt.Fprintf(out, "     %d) %s\n", j+1, step)
		}
	}
	return nil
}
