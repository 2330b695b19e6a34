package usecase

import (
	"context"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// Search ranks catalog activities for query. Without a search service it returns substring
// matches without scores.
func (uc *implUseCase) Search(ctx context.Context, input activity.SearchInput) (activity.SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return activity.SearchOutput{}, activity.ErrEmptyQuery
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	out := activity.SearchOutput{Query: query, Results: []activity.SearchResult{}}

	if uc.searchAvailable(ctx) {
		hits, err := uc.search.Search(ctx, query, limit)
		if err != nil {
			uc.l.Errorf(ctx, "Search: %v", err)
			return activity.SearchOutput{}, err
		}
		out.SearchServiceAvailable = true
		for _, hit := range hits {
			act, err := uc.repo.GetActivity(ctx, hit.Activity.ID)
			if err != nil {
				uc.l.Debugf(ctx, "Search: skip hit %s: %v", hit.Activity.ID, err)
				continue
			}
			score := hit.Score
			out.Results = append(out.Results, activity.SearchResult{Activity: act, Score: &score})
		}
		return out, nil
	}

	acts, err := uc.repo.FindActivitiesByName(ctx, query, limit)
	if err != nil {
		uc.l.Errorf(ctx, "Search: FindActivitiesByName: %v", err)
		return activity.SearchOutput{}, err
	}
	for _, act := range acts {
		out.Results = append(out.Results, activity.SearchResult{Activity: act})
	}
	return out, nil
}
