package learning

import "github.com/khanglvm/liftsearch/internal/text"

// Signals is a read-only snapshot of the persisted learning state, loaded
// once per query so scoring never touches storage.
type Signals struct {
	Usage    map[string]UsageRecord
	Affinity map[string][]AffinityEntry
	Aliases  map[string][]string
}

// LoadSignals reads all three collections.
func LoadSignals(aliases *AliasStore, usage *UsageStore, affinity *AffinityStore) Signals {
	return Signals{
		Usage:    usage.All(),
		Affinity: affinity.All(),
		Aliases:  aliases.ByExercise(),
	}
}

// UsageOf returns the usage record of exerciseID.
func (s Signals) UsageOf(exerciseID string) UsageRecord {
	return s.Usage[exerciseID]
}

// AffinityOf returns the affinity score of query for exerciseID.
func (s Signals) AffinityOf(query, exerciseID string) int {
	return affinityScore(s.Affinity[text.Normalize(query)], exerciseID)
}

// AliasesOf returns the stored alias texts of exerciseID.
func (s Signals) AliasesOf(exerciseID string) []string {
	return s.Aliases[exerciseID]
}
