/*
Package benchmark measures ranking latency for liftsearch.

Search runs on every keystroke, so each query must rank inside one 60Hz
frame (16ms). The benchmark runs a query set several times, records
average and worst-case latency, and estimates how many tokens the results
cost when returned to an AI client over MCP.

Token estimation uses the usual approximation for JSON: ~3 characters per
token.
*/
package benchmark

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// FrameBudget is the per-query latency target.
const FrameBudget = 16 * time.Millisecond

// DefaultIterations is the number of passes over the query set.
const DefaultIterations = 20

// DefaultQueries mixes exact names, abbreviations, misspellings, broad
// discovery terms and semantic queries.
var DefaultQueries = []string{
	"squat",
	"bench",
	"db bench",
	"bb row",
	"rdl",
	"ohp",
	"pull up",
	"chin-up",
	"incline db press",
	"legs",
	"chest",
	"back machine",
	"quads",
	"biceps curl",
	"hip thrust",
	"cable fly",
	"squatt",
	"45 degree",
	"x",
	"kettlebell swing",
}

// QueryResult is the measurement of one query.
type QueryResult struct {
	Query   string        `json:"query"`
	Average time.Duration `json:"average"`
	Max     time.Duration `json:"max"`
	Tokens  int           `json:"tokens"`
}

// Result aggregates a benchmark run.
type Result struct {
	Queries      []QueryResult `json:"queries"`
	Iterations   int           `json:"iterations"`
	Average      time.Duration `json:"average"`
	Max          time.Duration `json:"max"`
	Budget       time.Duration `json:"budget"`
	WithinBudget bool          `json:"withinBudget"`
}

// Slowest returns the n slowest queries by worst-case latency.
func (r *Result) Slowest(n int) []QueryResult {
	sorted := make([]QueryResult, len(r.Queries))
	copy(sorted, r.Queries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Max > sorted[j].Max
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Run times fn over every query. fn returns the value a client would
// receive, which is only used for token estimation.
func Run(fn func(query string) interface{}, queries []string, iterations int) *Result {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	result := &Result{
		Queries:    make([]QueryResult, 0, len(queries)),
		Iterations: iterations,
		Budget:     FrameBudget,
	}

	var total time.Duration
	for _, q := range queries {
		qr := QueryResult{Query: q}
		var sum time.Duration

		for i := 0; i < iterations; i++ {
			start := time.Now()
			out := fn(q)
			elapsed := time.Since(start)

			sum += elapsed
			if elapsed > qr.Max {
				qr.Max = elapsed
			}
			if i == 0 {
				qr.Tokens = CountTokens(out)
			}
		}

		qr.Average = sum / time.Duration(iterations)
		total += sum
		if qr.Max > result.Max {
			result.Max = qr.Max
		}
		result.Queries = append(result.Queries, qr)
	}

	if runs := len(queries) * iterations; runs > 0 {
		result.Average = total / time.Duration(runs)
	}
	result.WithinBudget = result.Max <= result.Budget
	return result
}

// CountTokens estimates token count for a JSON structure.
// Uses approximation: ~3 characters per token for JSON/code.
func CountTokens(v interface{}) int {
	if v == nil {
		return 0
	}
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(data) / 3
}

// FormatResult formats the benchmark result for display.
func FormatResult(result *Result) string {
	var sb strings.Builder

	status := "✅ within budget"
	if !result.WithinBudget {
		status = "⚠️  over budget"
	}

	sb.WriteString("╔══════════════════════════════════════════════════════════════╗\n")
	sb.WriteString("║              RANKING LATENCY BENCHMARK RESULTS               ║\n")
	sb.WriteString("╠══════════════════════════════════════════════════════════════╣\n")
	sb.WriteString("║                                                              ║\n")
	sb.WriteString(fmt.Sprintf("║  ⏱  Queries:    %-3d x %-4d iterations                        ║\n", len(result.Queries), result.Iterations))
	sb.WriteString(fmt.Sprintf("║     Average:    %-12s                                 ║\n", formatDuration(result.Average)))
	sb.WriteString(fmt.Sprintf("║     Worst case: %-12s                                 ║\n", formatDuration(result.Max)))
	sb.WriteString(fmt.Sprintf("║     Budget:     %-12s %-31s ║\n", formatDuration(result.Budget), status))
	sb.WriteString("║                                                              ║\n")
	sb.WriteString("╠══════════════════════════════════════════════════════════════╣\n")
	sb.WriteString("║                                                              ║\n")
	sb.WriteString("║  🐢 SLOWEST QUERIES                                          ║\n")
	for _, q := range result.Slowest(5) {
		sb.WriteString(fmt.Sprintf("║     %-22s %-12s ~%-6d tokens          ║\n", truncate(q.Query, 22), formatDuration(q.Max), q.Tokens))
	}
	sb.WriteString("║                                                              ║\n")
	sb.WriteString("╚══════════════════════════════════════════════════════════════╝\n")

	return sb.String()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
