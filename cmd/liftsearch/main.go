/*
Package main is the entry point for the liftsearch CLI.

liftsearch is a forgiving exercise-name search engine for workout logging.
It understands abbreviations (db, bb, rdl, ohp), typos and broad terms like
"legs", and learns from what you pick.

Usage:
  liftsearch [command]

Available Commands:
  search      Search exercises by name, abbreviation or alias
  explore     Browse exercises with precision or discovery search
  how         Search exercise instructions by keyword
  add         Add a custom exercise
  select      Record that an exercise was picked for a query
  list        List catalog and custom exercises
  remove      Remove a custom exercise
  learning    Manage learned aliases, usage and query affinity
  export      Export the merged catalog
  serve       Run the MCP server (stdio transport)
  benchmark   Measure ranking latency
  verify      Verify configuration, catalog and storage
  version     Show version information

Examples:
  # Find the dumbbell bench press
  liftsearch search db bench

  # Teach it a nickname
  liftsearch select "quad killer" "Front Squat" --learn-alias

  # Run as MCP server
  liftsearch serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/cli"
	"github.com/khanglvm/liftsearch/internal/version"
)

// Version information (set via ldflags during build)
var (
	ver    = "dev"
	commit = "none"
	date   = "unknown"
)

func main() {
	if ver != "dev" {
		version.Version, version.Commit, version.Date = ver, commit, date
	}

	rootCmd := &cobra.Command{
		Use:   "liftsearch",
		Short: "Forgiving exercise search that learns from your picks",
		Long: `liftsearch finds exercises the way people type them into a workout log.

  • Abbreviations and shorthand: "db bench", "rdl", "ohp"
  • Typos and punctuation: "squatt", "chin-up", "45°"
  • Broad terms with refiners: "legs" → machine, barbell, ...
  • Learning: frequently and recently picked exercises rank first,
    and queries you pick from become aliases

Everything runs locally: the catalog is loaded once, learning data is
stored in ~/.liftsearch/state.db.`,
		Version:      version.GetVersion(),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewExploreCmd())
	rootCmd.AddCommand(cli.NewInstructionsCmd())
	rootCmd.AddCommand(cli.NewAddCmd())
	rootCmd.AddCommand(cli.NewSelectCmd())
	rootCmd.AddCommand(cli.NewListCmd())
	rootCmd.AddCommand(cli.NewRemoveCmd())
	rootCmd.AddCommand(cli.NewLearningCmd())
	rootCmd.AddCommand(cli.NewExportCmd())
	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewBenchmarkCmd())
	rootCmd.AddCommand(cli.NewVerifyCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
