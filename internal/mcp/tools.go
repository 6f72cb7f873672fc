package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/engine"
	"github.com/khanglvm/liftsearch/internal/search"
)

// defaultInstructionLimit applies when exercise_instructions gets no limit.
const defaultInstructionLimit = 5

// argumentError marks a tool call with missing or malformed arguments.
type argumentError struct {
	msg string
}

func (e *argumentError) Error() string {
	return e.msg
}

func invalidArgs(format string, args ...interface{}) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}

// ToolDefinitions returns the tools exposed by the server.
func ToolDefinitions() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name":        "exercise_search",
			"description": "Find exercises by name, abbreviation or alias. Familiar exercises rank first; related exercises are suggested when few names match.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Free-text query, e.g. 'db bench' or 'rdl'",
					},
					"contextId": map[string]interface{}{
						"type":        "string",
						"description": "Optional workout context for context-aware ranking",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name":        "exercise_explore",
			"description": "Precision search for specific names, discovery search for broad terms like 'legs'. Returns refiners that can be passed back to narrow the results.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Free-text query",
					},
					"equipment": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Keep only these equipment labels",
					},
					"buckets": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Keep only these muscle buckets",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name":        "exercise_add",
			"description": "Create a custom exercise. Returns the existing exercise when the name is already known.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Display name of the exercise",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			"name":        "exercise_select",
			"description": "Record that an exercise was picked for a query so later searches rank it higher.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "The query the exercise was picked for",
					},
					"exerciseId": map[string]interface{}{
						"type":        "string",
						"description": "Id of the picked exercise",
					},
					"contextId": map[string]interface{}{
						"type":        "string",
						"description": "Optional workout context",
					},
					"learnAlias": map[string]interface{}{
						"type":        "boolean",
						"description": "Store the query as an alias of the exercise",
					},
				},
				"required": []string{"query", "exerciseId"},
			},
		},
		{
			"name":        "exercise_instructions",
			"description": "Keyword search over exercise instructions, e.g. 'hinge at the hips'.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Keywords to find in instructions",
					},
					"equipment": map[string]interface{}{
						"type":        "string",
						"description": "Optional equipment label filter",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum results (default 5)",
					},
				},
				"required": []string{"query"},
			},
		},
	}
}

// searchResult is the exercise_search payload.
type searchResult struct {
	Query   string             `json:"query"`
	Matches []catalog.Exercise `json:"matches"`
	Related []catalog.Exercise `json:"related"`
}

func (s *Server) execSearch(raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query     string `json:"query"`
		ContextID string `json:"contextId"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Query) == "" {
		return nil, invalidArgs("query is required")
	}

	tiers := s.engine.Search(args.Query, args.ContextID)
	return searchResult{
		Query:   args.Query,
		Matches: nonNil(tiers.Tier1),
		Related: nonNil(tiers.Tier2),
	}, nil
}

func (s *Server) execExplore(raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query     string   `json:"query"`
		Equipment []string `json:"equipment"`
		Buckets   []string `json:"buckets"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Query) == "" {
		return nil, invalidArgs("query is required")
	}

	result := s.engine.Explore(args.Query)
	if len(args.Equipment) > 0 || len(args.Buckets) > 0 {
		result = s.engine.Refine(result, args.Equipment, args.Buckets)
	}
	return result, nil
}

func (s *Server) execAdd(raw json.RawMessage) (interface{}, error) {
	var args struct {
		Name string `json:"name"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Name) == "" {
		return nil, invalidArgs("name is required")
	}

	return s.engine.AddExercise(args.Name)
}

// selectResult is the exercise_select payload.
type selectResult struct {
	ExerciseID   string  `json:"exerciseId"`
	Count        int     `json:"count"`
	Affinity     int     `json:"affinity"`
	LearnedAlias *string `json:"learnedAlias,omitempty"`
}

func (s *Server) execSelect(raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query      string `json:"query"`
		ExerciseID string `json:"exerciseId"`
		ContextID  string `json:"contextId"`
		LearnAlias *bool  `json:"learnAlias"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.ExerciseID == "" {
		return nil, invalidArgs("exerciseId is required")
	}

	learn := s.learnAliases
	if args.LearnAlias != nil {
		learn = *args.LearnAlias
	}

	tracked, err := s.engine.RecordSelection(args.Query, args.ExerciseID, engine.SelectionOptions{
		ContextID:  args.ContextID,
		LearnAlias: learn,
	})
	if err != nil {
		return nil, err
	}

	result := selectResult{
		ExerciseID: args.ExerciseID,
		Count:      tracked.Usage.Count,
		Affinity:   tracked.Affinity.Score,
	}
	if tracked.Alias != nil {
		result.LearnedAlias = &tracked.Alias.Text
	}
	return result, nil
}

func (s *Server) execInstructions(raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query     string `json:"query"`
		Equipment string `json:"equipment"`
		Limit     int    `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Query) == "" {
		return nil, invalidArgs("query is required")
	}
	if args.Limit <= 0 {
		args.Limit = defaultInstructionLimit
	}

	hits, err := s.engine.Instructions(args.Query, args.Equipment, args.Limit)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []search.InstructionHit{}
	}
	return hits, nil
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return invalidArgs("invalid arguments: %v", err)
	}
	return nil
}

func nonNil(exercises []catalog.Exercise) []catalog.Exercise {
	if exercises == nil {
		return []catalog.Exercise{}
	}
	return exercises
}
