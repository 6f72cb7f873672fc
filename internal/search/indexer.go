package search

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// Indexer manages the full-text index over exercise names and instructions.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewIndexer creates a new indexer with an in-memory Bleve index.
func NewIndexer() (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Indexer{bleveIndex: index}, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	exerciseMapping := bleve.NewDocumentMapping()

	// Name, instructions and muscles are searchable text.
	exerciseMapping.AddFieldMappingsAt("name", bleve.NewTextFieldMapping())
	exerciseMapping.AddFieldMappingsAt("instructions", bleve.NewTextFieldMapping())
	exerciseMapping.AddFieldMappingsAt("muscles", bleve.NewTextFieldMapping())

	// Equipment is searchable for filtering.
	exerciseMapping.AddFieldMappingsAt("equipment", bleve.NewTextFieldMapping())

	// Kind is stored but not indexed (for retrieval).
	kindMapping := bleve.NewTextFieldMapping()
	kindMapping.Index = false
	kindMapping.IncludeInAll = false
	exerciseMapping.AddFieldMappingsAt("kind", kindMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", exerciseMapping)

	return indexMapping
}

// IndexExercises indexes exercises by id, replacing earlier documents with
// the same id.
func (i *Indexer) IndexExercises(exercises []catalog.Exercise) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()

	for _, e := range exercises {
		steps, _ := e.Instructions()
		doc := map[string]interface{}{
			"name":         e.Name,
			"instructions": strings.Join(steps, "\n"),
			"muscles":      strings.Join(muscleText(e), " "),
			"equipment":    e.EquipmentLabel(),
			"kind":         e.Kind.String(),
		}

		if err := batch.Index(e.ID, doc); err != nil {
			log.Printf("Warning: failed to index exercise %s: %v", e.ID, err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index exercises: %w", err)
	}

	return nil
}

// Remove deletes exercises from the index by id.
func (i *Indexer) Remove(ids ...string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch delete: %w", err)
	}

	return nil
}

// Count returns the total number of indexed exercises.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}

	return nil
}

// buildMatchQuery creates a match query for BM25 search.
func (i *Indexer) buildMatchQuery(searchText string) query.Query {
	return bleve.NewMatchQuery(searchText)
}
