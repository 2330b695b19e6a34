package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/yamlfile"
)

func (uc *implUseCase) GetProgram(ctx context.Context, id string) (model.Program, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Program{}, plan.ErrMissingProgram
	}

	p, err := uc.programs.GetProgram(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Program{}, fmt.Errorf("%w: %s", plan.ErrProgramNotFound, id)
		}
		uc.l.Errorf(ctx, "GetProgram: %s: %v", id, err)
		return model.Program{}, err
	}
	return p, nil
}

// LoadProgramFile validates a YAML program definition and stores it.
func (uc *implUseCase) LoadProgramFile(ctx context.Context, input plan.LoadProgramFileInput) (model.Program, error) {
	f, err := os.Open(input.Path)
	if err != nil {
		return model.Program{}, fmt.Errorf("open program file: %w", err)
	}
	defer f.Close()

	p, err := yamlfile.Decode(f)
	if err != nil {
		return model.Program{}, fmt.Errorf("%w: %w", plan.ErrInvalidProgram, err)
	}
	if err := plan.Validate(p); err != nil {
		return model.Program{}, fmt.Errorf("%w: %w", plan.ErrInvalidProgram, err)
	}
	if input.UserID != "" {
		p.UserID = input.UserID
	}

	saved, err := uc.programs.UpsertProgram(ctx, p)
	if err != nil {
		uc.l.Errorf(ctx, "LoadProgramFile: upsert %s: %v", input.Path, err)
		return model.Program{}, err
	}
	uc.l.Infof(ctx, "LoadProgramFile: stored program %s (%s) with %d phases", saved.ID, saved.Name, len(saved.Phases))
	return saved, nil
}
