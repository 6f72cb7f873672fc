package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/version"
)

// NewVersionCmd creates the 'version' command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version, commit hash, and build date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}

	return cmd
}

func runVersion(cmd *cobra.Command) error {
	v, c, d := version.GetVersionComponents()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Version:  %s\n", v)
	fmt.Fprintf(out, "Commit:   %s\n", c)
	fmt.Fprintf(out, "Built:    %s\n", d)
	return nil
}
