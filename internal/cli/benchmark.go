package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/liftsearch/internal/benchmark"
)

// NewBenchmarkCmd creates the 'benchmark' command for ranking latency.
func NewBenchmarkCmd() *cobra.Command {
	var (
		jsonOutput bool
		iterations int
		explore    bool
	)

	cmd := &cobra.Command{
		Use:     "benchmark [query...]",
		Aliases: []string{"bench"},
		Short:   "Measure ranking latency against the 16ms frame budget",
		Long: `Run a ranking latency benchmark.

Search runs on every keystroke, so each query should rank within one 60Hz
frame (16ms). The benchmark runs a mixed query set (abbreviations, typos,
broad terms, semantic queries) against your catalog and learning data and
reports average and worst-case latency per query.

Pass queries as arguments to benchmark your own set.`,
		Example: `  # Run benchmark with the default query set
  liftsearch benchmark

  # Benchmark explore instead of search
  liftsearch benchmark --explore

  # Custom queries, output as JSON
  liftsearch benchmark "db bench" rdl --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, args, iterations, explore, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", benchmark.DefaultIterations, "Passes over the query set")
	cmd.Flags().BoolVar(&explore, "explore", false, "Benchmark explore instead of search")

	return cmd
}

// runBenchmark executes the ranking latency benchmark.
func runBenchmark(cmd *cobra.Command, queries []string, iterations int, explore, jsonOutput bool) error {
	e, _, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if len(queries) == 0 {
		queries = benchmark.DefaultQueries
	}

	fn := func(q string) interface{} { return e.Search(q, "") }
	if explore {
		fn = func(q string) interface{} { return e.Explore(q) }
	}

	result := benchmark.Run(fn, queries, iterations)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, result)
	}

	fmt.Fprintf(out, "Catalog: %d exercises\n\n", len(e.Exercises()))
	fmt.Fprint(out, benchmark.FormatResult(result))
	return nil
}
