package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/engine"
)

// NewSelectCmd creates the 'select' command that records a pick so future
// searches learn from it.
func NewSelectCmd() *cobra.Command {
	var (
		contextID  string
		learnAlias bool
	)

	cmd := &cobra.Command{
		Use:   "select <query> <exercise>",
		Short: "Record that an exercise was picked for a query",
		Long: `Record a selection. Usage counts, recency and query affinity are always
updated; with --learn-alias the query is also stored as an alias of the
exercise when it is not already a known name.

The exercise may be given by id or by display name. The --learn-alias
default comes from learning.learnAliases in ~/.liftsearch.json.`,
		Example: `  liftsearch select "db bench" "Dumbbell Bench Press"
  liftsearch select "quad killer" sys-front-squat --learn-alias
  liftsearch select squat sys-squat --context leg-day`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var learn *bool
			if cmd.Flags().Changed("learn-alias") {
				learn = &learnAlias
			}
			return runSelect(cmd, args[0], args[1], contextID, learn)
		},
	}

	cmd.Flags().StringVarP(&contextID, "context", "c", "", "Workout context id")
	cmd.Flags().BoolVar(&learnAlias, "learn-alias", false, "Store the query as an alias")

	return cmd
}

func runSelect(cmd *cobra.Command, query, ref, contextID string, learn *bool) error {
	e, cfg, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	if !e.LearningEnabled() {
		fmt.Fprintln(out, "Learning is disabled; nothing recorded.")
		return nil
	}

	ex, err := resolveExercise(e, ref)
	if err != nil {
		return err
	}

	learnAlias := cfg.Learning.LearnAliases
	if learn != nil {
		learnAlias = *learn
	}

	result, err := e.RecordSelection(query, ex.ID, engine.SelectionOptions{
		ContextID:  contextID,
		LearnAlias: learnAlias,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Recorded %s for %q (picked %d times)\n", ex.Name, query, result.Usage.Count)
	if result.Alias != nil {
		fmt.Fprintf(out, "  Learned alias %q\n", result.Alias.Text)
	}
	return nil
}
