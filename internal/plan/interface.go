package plan

import (
	"context"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// PlanProgramForUser schedules a stored program for a user and persists the result.
	PlanProgramForUser(ctx context.Context, input PlanInput) (PlanOutput, error)
	// ListPlanned returns persisted planned activities in chronological order.
	ListPlanned(ctx context.Context, input ListPlannedInput) ([]model.PlannedActivity, error)

	// Programs
	GetProgram(ctx context.Context, id string) (model.Program, error)
	LoadProgramFile(ctx context.Context, input LoadProgramFileInput) (model.Program, error)
}
