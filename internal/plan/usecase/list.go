package usecase

import (
	"context"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

func (uc *implUseCase) ListPlanned(ctx context.Context, input plan.ListPlannedInput) ([]model.PlannedActivity, error) {
	if input.UserID == "" {
		return nil, plan.ErrMissingUser
	}

	items, err := uc.planned.ListPlannedActivities(ctx, repository.ListPlannedActivitiesOptions{
		UserID:    input.UserID,
		ProgramID: input.ProgramID,
		StartMs:   input.StartMs,
		EndMs:     input.EndMs,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ListPlanned: user=%s: %v", input.UserID, err)
		return nil, err
	}
	return items, nil
}
