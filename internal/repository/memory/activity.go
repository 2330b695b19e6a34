package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

func (r *implRepository) InsertActivity(ctx context.Context, opt repository.InsertActivityOptions) (model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if opt.Slug != "" {
		for _, a := range r.activities {
			if a.Slug == opt.Slug {
				return model.Activity{}, repository.ErrDuplicate
			}
		}
	}

	act := model.Activity{
		ID:           uuid.NewString(),
		Name:         opt.Name,
		Slug:         opt.Slug,
		Description:  opt.Description,
		Category:     opt.Category,
		MuscleGroups: opt.MuscleGroups,
		Equipment:    opt.Equipment,
		CreatedAtMs:  r.now().UnixMilli(),
	}
	r.activities[act.ID] = act
	return act, nil
}

func (r *implRepository) GetActivity(ctx context.Context, id string) (model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	act, ok := r.activities[id]
	if !ok {
		return model.Activity{}, repository.ErrNotFound
	}
	return act, nil
}

func (r *implRepository) GetActivityBySlug(ctx context.Context, slug string) (model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.activities {
		if a.Slug == slug {
			return a, nil
		}
	}
	return model.Activity{}, repository.ErrNotFound
}

func (r *implRepository) FindActivitiesByName(ctx context.Context, name string, limit int) ([]model.Activity, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	var out []model.Activity
	for _, a := range r.sortedActivities() {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *implRepository) ListActivities(ctx context.Context) ([]model.Activity, error) {
	return r.sortedActivities(), nil
}

func (r *implRepository) sortedActivities() []model.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Activity, 0, len(r.activities))
	for _, a := range r.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
