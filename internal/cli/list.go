package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// NewListCmd creates the 'list' command for listing catalog exercises.
func NewListCmd() *cobra.Command {
	var (
		userOnly   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog and custom exercises",
		Long:    `Display every exercise in the merged catalog, or only custom ones with --user.`,
		Example: `  liftsearch list
  liftsearch ls --user
  liftsearch list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, userOnly, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&userOnly, "user", "u", false, "Only custom exercises")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command, userOnly, jsonOutput bool) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	exercises := e.Exercises()
	if userOnly {
		var users []catalog.Exercise
		for _, ex := range exercises {
			if ex.Kind == catalog.KindUser {
				users = append(users, ex)
			}
		}
		exercises = users
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if exercises == nil {
			exercises = []catalog.Exercise{}
		}
		return writeJSON(out, exercises)
	}

	if len(exercises) == 0 {
		fmt.Fprintln(out, "No custom exercises.")
		fmt.Fprintln(out, "Run 'liftsearch add <name>' to create one.")
		return nil
	}

	fmt.Fprintf(out, "Exercises (%d):\n\n", len(exercises))
	printExercises(out, exercises)
	return nil
}
