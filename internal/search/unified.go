package search

import "github.com/khanglvm/liftsearch/internal/catalog"

// DiscoveryLimit caps discovery results.
const DiscoveryLimit = 80

// UnifiedResult is the output of Search. Precision queries fill Best and
// Related; discovery queries fill Results.
type UnifiedResult struct {
	Query  string `json:"query"`
	Intent Intent `json:"intent"`

	Best    []Scored `json:"best,omitempty"`
	Related []Scored `json:"related,omitempty"`
	Results []Scored `json:"results,omitempty"`

	// Refiners are computed over the refinable set: the related tier in
	// precision mode, all results in discovery mode.
	Refiners Refiners `json:"refiners"`
}

// Total returns the number of results across tiers.
func (r UnifiedResult) Total() int {
	return len(r.Best) + len(r.Related) + len(r.Results)
}

// refinable returns the results refiners apply to.
func (r UnifiedResult) refinable() []Scored {
	if r.Intent == IntentPrecision {
		return r.Related
	}
	return r.Results
}

// Search detects the intent of query and runs the matching search mode.
func Search(exercises []catalog.Exercise, query string) UnifiedResult {
	result := UnifiedResult{Query: query, Intent: DetectIntent(query)}

	switch result.Intent {
	case IntentPrecision:
		p := Precision(exercises, query)
		result.Best = p.Best
		result.Related = p.Related
	case IntentDiscovery:
		results := Discovery(exercises, query)
		if len(results) > DiscoveryLimit {
			results = results[:DiscoveryLimit]
		}
		result.Results = results
	}

	result.Refiners = BuildRefiners(result.refinable())
	return result
}

// ApplyRefiners filters a unified result. In precision mode only the
// related tier is filtered and the best tier is always kept whole.
func ApplyRefiners(r UnifiedResult, equipment, buckets []string) UnifiedResult {
	switch r.Intent {
	case IntentPrecision:
		r.Related = FilterResults(r.Related, equipment, buckets)
	case IntentDiscovery:
		r.Results = FilterResults(r.Results, equipment, buckets)
	}
	return r
}
