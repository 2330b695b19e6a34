package usecase

import (
	"context"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
)

// SearchStatus reports search availability and how far the index lags the catalog.
func (uc *implUseCase) SearchStatus(ctx context.Context) (activity.SearchStatusOutput, error) {
	acts, err := uc.repo.ListActivities(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "SearchStatus: ListActivities: %v", err)
		return activity.SearchStatusOutput{}, err
	}
	out := activity.SearchStatusOutput{CatalogCount: len(acts)}

	if !uc.searchAvailable(ctx) {
		return out, nil
	}
	out.Available = true

	count, err := uc.search.DocumentCount(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "SearchStatus: DocumentCount: %v", err)
		return out, nil
	}
	out.DocumentCount = count
	return out, nil
}

// SeedIndex applies the index settings and pushes the whole catalog.
func (uc *implUseCase) SeedIndex(ctx context.Context) (activity.SeedIndexOutput, error) {
	if !uc.searchAvailable(ctx) {
		return activity.SeedIndexOutput{}, activity.ErrSearchUnavailable
	}

	if err := uc.search.ConfigureIndex(ctx); err != nil {
		uc.l.Errorf(ctx, "SeedIndex: ConfigureIndex: %v", err)
		return activity.SeedIndexOutput{}, err
	}

	acts, err := uc.repo.ListActivities(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "SeedIndex: ListActivities: %v", err)
		return activity.SeedIndexOutput{}, err
	}
	if len(acts) == 0 {
		return activity.SeedIndexOutput{}, nil
	}

	if err := uc.search.AddDocuments(ctx, acts); err != nil {
		uc.l.Errorf(ctx, "SeedIndex: AddDocuments: %v", err)
		return activity.SeedIndexOutput{}, err
	}
	uc.l.Infof(ctx, "SeedIndex: indexed %d activities", len(acts))
	return activity.SeedIndexOutput{Indexed: len(acts)}, nil
}
