package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

func (r *implRepository) GetProgram(ctx context.Context, id string) (model.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.programs[id]
	if !ok {
		return model.Program{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *implRepository) UpsertProgram(ctx context.Context, program model.Program) (model.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	r.programs[program.ID] = program
	return program, nil
}

func (r *implRepository) InsertPlannedActivities(ctx context.Context, items []model.PlannedActivity) ([]model.PlannedActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.PlannedActivity, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		out[i] = it
	}
	r.planned = append(r.planned, out...)
	return out, nil
}

func (r *implRepository) ListPlannedActivities(ctx context.Context, opt repository.ListPlannedActivitiesOptions) ([]model.PlannedActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.PlannedActivity
	for _, p := range r.planned {
		if opt.UserID != "" && p.UserID != opt.UserID {
			continue
		}
		if opt.ProgramID != "" && p.ProgramID != opt.ProgramID {
			continue
		}
		if !repository.InRange(p.PlannedTimeUtcMs, opt.StartMs, opt.EndMs) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlannedTimeUtcMs < out[j].PlannedTimeUtcMs })
	return out, nil
}
