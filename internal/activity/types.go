package activity

import "github.com/asyncopatedsoul/health-protocol/internal/model"

// DefaultThreshold is the minimum relevance score a search hit needs to count as a match.
const DefaultThreshold = 0.7

// --- UseCase Inputs ---

// ResolveInput names the activity to find or create. Threshold <= 0 means DefaultThreshold.
// The optional catalog attributes are only used when a new activity is created.
type ResolveInput struct {
	Name         string
	Threshold    float64
	RawMetadata  []string
	Description  string
	Category     string
	MuscleGroups []string
	Equipment    []string
}

type SearchInput struct {
	Query string
	Limit int
}

// --- UseCase Outputs ---

// ResolveOutput reports either a matched (Created=false) or a newly inserted activity.
// Score is set only when the match came from the search service.
type ResolveOutput struct {
	Matched                bool
	Activity               model.Activity
	Created                bool
	Score                  *float64
	SearchServiceAvailable bool
}

type SearchResult struct {
	Activity model.Activity
	Score    *float64
}

type SearchOutput struct {
	Query                  string
	Results                []SearchResult
	SearchServiceAvailable bool
}

type SearchStatusOutput struct {
	Available     bool
	DocumentCount int
	CatalogCount  int
}

type SeedIndexOutput struct {
	Indexed int
}
