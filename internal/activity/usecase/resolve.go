package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/observability"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/slug"
)

// Resolve finds the best catalog match for input.Name or inserts a new activity.
func (uc *implUseCase) Resolve(ctx context.Context, input activity.ResolveInput) (activity.ResolveOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return activity.ResolveOutput{}, activity.ErrEmptyName
	}
	threshold := input.Threshold
	if threshold <= 0 {
		threshold = activity.DefaultThreshold
	}

	available := uc.searchAvailable(ctx)

	var (
		match model.Activity
		score *float64
		found bool
		err   error
	)
	if available {
		match, score, found, err = uc.matchViaSearch(ctx, name, threshold)
	} else {
		match, found, err = uc.matchViaCatalog(ctx, name)
	}
	if err != nil {
		return activity.ResolveOutput{}, err
	}

	if found {
		observability.RecordResolution(available, false)
		return activity.ResolveOutput{
			Matched:                true,
			Activity:               match,
			Score:                  score,
			SearchServiceAvailable: available,
		}, nil
	}

	created, isNew, err := uc.create(ctx, name, input)
	if err != nil {
		return activity.ResolveOutput{}, err
	}
	observability.RecordResolution(available, isNew)

	if isNew && available {
		if err := uc.search.AddDocuments(ctx, []model.Activity{created}); err != nil {
			uc.l.Warnf(ctx, "Resolve: index %s: %v", created.ID, err)
		}
	}

	return activity.ResolveOutput{
		Matched:                !isNew,
		Activity:               created,
		Created:                isNew,
		SearchServiceAvailable: available,
	}, nil
}

func (uc *implUseCase) searchAvailable(ctx context.Context) bool {
	if uc.search == nil {
		return false
	}
	ok := uc.search.Health(ctx)
	observability.RecordSearchAvailability(ok)
	return ok
}

// matchViaSearch accepts the top hit only when its score is strictly above threshold.
// The hit is re-read from the catalog so a stale index entry never resolves.
func (uc *implUseCase) matchViaSearch(ctx context.Context, name string, threshold float64) (model.Activity, *float64, bool, error) {
	hits, err := uc.search.Search(ctx, name, 1)
	if err != nil {
		uc.l.Warnf(ctx, "Resolve: search %q: %v", name, err)
		return model.Activity{}, nil, false, nil
	}
	if len(hits) == 0 {
		return model.Activity{}, nil, false, nil
	}

	best := hits[0]
	score := best.Score
	if score <= threshold {
		uc.l.Debugf(ctx, "Resolve: %q best hit %q scored %.3f <= %.3f", name, best.Activity.Name, score, threshold)
		return model.Activity{}, nil, false, nil
	}

	act, err := uc.repo.GetActivity(ctx, best.Activity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.l.Warnf(ctx, "Resolve: stale index hit %s for %q", best.Activity.ID, name)
			return model.Activity{}, nil, false, nil
		}
		uc.l.Errorf(ctx, "Resolve: GetActivity %s: %v", best.Activity.ID, err)
		return model.Activity{}, nil, false, err
	}
	return act, &score, true, nil
}

func (uc *implUseCase) matchViaCatalog(ctx context.Context, name string) (model.Activity, bool, error) {
	acts, err := uc.repo.FindActivitiesByName(ctx, name, 1)
	if err != nil {
		uc.l.Errorf(ctx, "Resolve: FindActivitiesByName %q: %v", name, err)
		return model.Activity{}, false, err
	}
	if len(acts) == 0 {
		return model.Activity{}, false, nil
	}
	return acts[0], true, nil
}

// create inserts a catalog entry for name. When another activity already owns the generated
// slug under an equivalent name, that activity is returned with isNew=false. An unrelated owner
// makes the insert retry once with a disambiguated slug.
func (uc *implUseCase) create(ctx context.Context, name string, input activity.ResolveInput) (model.Activity, bool, error) {
	desc := input.Description
	if desc == "" {
		desc = importedDescription(input.RawMetadata)
	}

	base := slug.Make(name)
	for _, s := range []string{base, slug.Disambiguate(base, name)} {
		act, err := uc.repo.InsertActivity(ctx, repository.InsertActivityOptions{
			Name:         name,
			Slug:         s,
			Description:  desc,
			Category:     input.Category,
			MuscleGroups: input.MuscleGroups,
			Equipment:    input.Equipment,
		})
		if err == nil {
			uc.l.Infof(ctx, "Resolve: created activity %s %q", act.ID, act.Name)
			return act, true, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			uc.l.Errorf(ctx, "Resolve: InsertActivity %q: %v", name, err)
			return model.Activity{}, false, fmt.Errorf("create activity %q: %w", name, err)
		}

		existing, err := uc.repo.GetActivityBySlug(ctx, s)
		if err != nil {
			uc.l.Errorf(ctx, "Resolve: GetActivityBySlug %q: %v", s, err)
			return model.Activity{}, false, fmt.Errorf("create activity %q: %w", name, err)
		}
		if slug.Equivalent(existing.Name, name) {
			return existing, false, nil
		}
		uc.l.Warnf(ctx, "Resolve: slug %q owned by %q, not %q", s, existing.Name, name)
	}
	return model.Activity{}, false, fmt.Errorf("create activity %q: %w", name, repository.ErrDuplicate)
}

func importedDescription(raw []string) string {
	if raw == nil {
		raw = []string{}
	}
	body, _ := json.Marshal(raw)
	return "Imported from note. Raw metadata: " + string(body)
}
