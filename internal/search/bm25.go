package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// defaultInstructionLimit is used when no limit is given.
const defaultInstructionLimit = 10

var instructionFields = []string{"name", "instructions", "equipment", "kind"}

// InstructionHit is a full-text match over exercise instructions.
type InstructionHit struct {
	ExerciseID   string   `json:"id"`
	Name         string   `json:"name"`
	Equipment    string   `json:"equipment,omitempty"`
	Kind         string   `json:"kind"`
	Instructions []string `json:"instructions,omitempty"`
	Score        float64  `json:"score"`
}

// SearchInstructions performs BM25 keyword search over names and
// instructions.
func (i *Indexer) SearchInstructions(text string, limit int) ([]InstructionHit, error) {
	return i.search(i.buildMatchQuery(text), limit)
}

// SearchInstructionsWithEquipment performs BM25 search scoped to one
// equipment label.
func (i *Indexer) SearchInstructionsWithEquipment(text, equipment string, limit int) ([]InstructionHit, error) {
	if equipment == "" {
		return i.SearchInstructions(text, limit)
	}

	// (match query) AND (equipment filter)
	equipmentQuery := bleve.NewMatchPhraseQuery(equipment)
	equipmentQuery.SetField("equipment")

	return i.search(bleve.NewConjunctionQuery(i.buildMatchQuery(text), equipmentQuery), limit)
}

func (i *Indexer) search(q query.Query, limit int) ([]InstructionHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = defaultInstructionLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(q, limit, 0, false)
	searchRequest.Fields = instructionFields

	results, err := i.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// convertBleveResults converts Bleve search results to instruction hits.
func convertBleveResults(results *bleve.SearchResult) []InstructionHit {
	hits := make([]InstructionHit, 0, len(results.Hits))

	for _, hit := range results.Hits {
		name, _ := hit.Fields["name"].(string)
		equipment, _ := hit.Fields["equipment"].(string)
		kind, _ := hit.Fields["kind"].(string)
		instructions, _ := hit.Fields["instructions"].(string)

		var steps []string
		if instructions != "" {
			steps = strings.Split(instructions, "\n")
		}

		hits = append(hits, InstructionHit{
			ExerciseID:   hit.ID,
			Name:         name,
			Equipment:    equipment,
			Kind:         kind,
			Instructions: steps,
			Score:        hit.Score,
		})
	}

	return hits
}
