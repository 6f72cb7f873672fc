package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/search"
)

// NewExploreCmd creates the 'explore' command for precision and discovery
// search with refiners.
func NewExploreCmd() *cobra.Command {
	var (
		equipment  []string
		buckets    []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "explore <query>",
		Short: "Browse exercises with precision or discovery search",
		Long: `Explore routes the query by intent.

PRECISION (specific names, e.g. "incline db press"):
  Best matches by name, then related exercises sharing equipment or muscles.

DISCOVERY (broad terms, e.g. "legs", "back machine"):
  Every exercise with a matching name, alias, equipment or muscle signal.

Refiners are suggested when a result set is large; pass them back with
--equipment and --bucket to narrow it.`,
		Example: `  liftsearch explore legs
  liftsearch explore legs --equipment machine
  liftsearch explore "cable fly" --bucket chest`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, strings.Join(args, " "), equipment, buckets, jsonOutput)
		},
	}

	cmd.Flags().StringSliceVarP(&equipment, "equipment", "e", nil, "Keep only these equipment labels")
	cmd.Flags().StringSliceVarP(&buckets, "bucket", "b", nil, "Keep only these muscle buckets")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runExplore(cmd *cobra.Command, query string, equipment, buckets []string, jsonOutput bool) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	result := e.Explore(query)
	if len(equipment) > 0 || len(buckets) > 0 {
		result = e.Refine(result, equipment, buckets)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, result)
	}

	fmt.Fprintf(out, "Intent: %s (%d results)\n", result.Intent, result.Total())

	if result.Intent == search.IntentPrecision {
		fmt.Fprintf(out, "\nBest (%d):\n", len(result.Best))
		printScored(out, result.Best)
		if len(result.Related) > 0 {
			fmt.Fprintf(out, "\nRelated (%d):\n", len(result.Related))
			printScored(out, result.Related)
		}
	} else {
		printScored(out, result.Results)
	}

	printRefiners(out, result.Refiners)
	return nil
}

func printScored(w io.Writer, results []search.Scored) {
	for i, r := range results {
		why := r.Reason
		if len(r.Signals) > 0 {
			why = strings.Join(r.Signals, ", ")
		}
		fmt.Fprintf(w, "  %2d. %-36s %6.0f  %s\n", i+1, r.Exercise.Name, r.Score, why)
	}
}

func printRefiners(w io.Writer, r search.Refiners) {
	if r.IsEmpty() {
		return
	}
	fmt.Fprintln(w, "\nRefine with:")
	for _, f := range r.Equipment {
		fmt.Fprintf(w, "  --equipment %q (%d)\n", f.Label, f.Count)
	}
	for _, f := range r.Buckets {
		fmt.Fprintf(w, "  --bucket %q (%d)\n", f.Label, f.Count)
	}
}
