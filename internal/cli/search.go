package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the 'search' command for familiarity-ranked search.
func NewSearchCmd() *cobra.Command {
	var (
		contextID  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search exercises by name, abbreviation or alias",
		Long: `Search the exercise catalog the way you would type into a workout log.

Matches are ranked by familiarity: exercises you pick often, pick recently,
or picked for this exact query come first, then popular anchor exercises.
When few names match, semantically related exercises are listed too.`,
		Example: `  liftsearch search db bench
  liftsearch search rdl
  liftsearch search quads --json
  liftsearch search squat --context leg-day`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), contextID, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&contextID, "context", "c", "", "Workout context id for context-aware ranking")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, query, contextID string, jsonOutput bool) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	tiers := e.Search(query, contextID)
	out := cmd.OutOrStdout()

	if jsonOutput {
		return writeJSON(out, tiers)
	}

	if len(tiers.Tier1) == 0 && len(tiers.Tier2) == 0 {
		fmt.Fprintf(out, "No exercises found for %q.\n", query)
		fmt.Fprintln(out, "Run 'liftsearch add <name>' to create it.")
		return nil
	}

	fmt.Fprintf(out, "Matches (%d):\n", len(tiers.Tier1))
	printExercises(out, tiers.Tier1)

	if len(tiers.Tier2) > 0 {
		fmt.Fprintf(out, "\nRelated (%d):\n", len(tiers.Tier2))
		printExercises(out, tiers.Tier2)
	}
	return nil
}
