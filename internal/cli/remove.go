package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// NewRemoveCmd creates the 'remove' command for deleting custom exercises.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <exercise>",
		Aliases: []string{"rm"},
		Short:   "Remove a custom exercise",
		Long: `Remove a user exercise by id or name, together with its aliases,
usage history and query affinities. Catalog exercises cannot be removed.`,
		Example: `  liftsearch remove "Zercher Squat"
  liftsearch rm user-6f1c...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, strings.Join(args, " "))
		},
	}

	return cmd
}

// runRemove keeps every user exercise except the named one and prunes the
// signals that referenced it.
func runRemove(cmd *cobra.Command, ref string) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	ex, err := resolveExercise(e, ref)
	if err != nil {
		return err
	}
	if ex.Kind != catalog.KindUser {
		return fmt.Errorf("'%s' is a catalog exercise and cannot be removed", ex.Name)
	}

	var keep []string
	for _, id := range e.UserIDs() {
		if id != ex.ID {
			keep = append(keep, id)
		}
	}

	result := e.Cleanup(keep)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed '%s' (%d learning records)\n", ex.Name, result.Signals)
	return nil
}
