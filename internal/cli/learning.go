package cli

import (
	"github.com/spf13/cobra"
)

// NewLearningCmd creates the learning command group.
func NewLearningCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learning",
		Short: "Manage learned aliases, usage and query affinity",
		Long: `liftsearch learns from every selection: how often and how recently an
exercise is picked, which exercise each query ends in, and new aliases
typed by the user.

All data is stored locally (default ~/.liftsearch/state.db).

Commands:
  status   Show learning statistics
  aliases  List the aliases of an exercise
  alias    Add a manual alias
  export   Export all learning data as JSON
  cleanup  Drop signals of exercises that no longer exist
  disable  Turn off tracking
  enable   Turn on tracking`,
	}

	cmd.AddCommand(newLearningStatusCmd())
	cmd.AddCommand(newLearningAliasesCmd())
	cmd.AddCommand(newLearningAliasCmd())
	cmd.AddCommand(newLearningExportCmd())
	cmd.AddCommand(newLearningCleanupCmd())
	cmd.AddCommand(newLearningToggleCmd("disable", false))
	cmd.AddCommand(newLearningToggleCmd("enable", true))

	return cmd
}
