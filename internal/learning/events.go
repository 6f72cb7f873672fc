/*
Package learning implements the persisted learning signals and the
familiarity scorer.

Three stores share one durability contract: each collection is loaded whole
(missing or corrupt data becomes empty), modified, and rewritten whole.
Faults are logged, never returned. The alias store remembers alternative
names, the usage store counts selections, and the affinity store keeps a
short ranked list of preferred exercises per query.

A selection is the only event that writes learning state. The presentation
layer builds one SelectionEvent per user choice and hands it to a Tracker.
*/
package learning

import (
	"time"

	"github.com/khanglvm/liftsearch/internal/text"
)

// SelectionEvent is a user choosing an exercise for a query.
type SelectionEvent struct {
	// Query is the text the user typed.
	Query string

	// ExerciseID is the exercise that was chosen.
	ExerciseID string

	// ExerciseName is the display name of the chosen exercise. A query equal
	// to the name is never learned as an alias.
	ExerciseName string

	// ContextID identifies the workout or template being edited (optional).
	ContextID string

	// LearnAlias asks for the query to be learned as an alias.
	LearnAlias bool

	// Timestamp is when the selection happened.
	Timestamp time.Time
}

// NewSelectionEvent creates a selection event stamped with the current time.
func NewSelectionEvent(query, exerciseID, exerciseName, contextID string, learnAlias bool) SelectionEvent {
	return SelectionEvent{
		Query:        query,
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		ContextID:    contextID,
		LearnAlias:   learnAlias,
		Timestamp:    time.Now(),
	}
}

// shouldLearnAlias reports whether the query carries information the name
// does not already.
func (e SelectionEvent) shouldLearnAlias() bool {
	if !e.LearnAlias {
		return false
	}
	q := text.Normalize(e.Query)
	return q != "" && q != text.Normalize(e.ExerciseName)
}
