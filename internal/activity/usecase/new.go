package usecase

import (
	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// implUseCase is the private implementation of activity.UseCase.
type implUseCase struct {
	repo   repository.ActivityRepository
	search repository.SearchRepository
	l      log.Logger
}

// New creates the activity resolver. search may be nil, in which case every lookup falls back
// to a substring search over the catalog.
func New(repo repository.ActivityRepository, search repository.SearchRepository, l log.Logger) activity.UseCase {
	return &implUseCase{
		repo:   repo,
		search: search,
		l:      l,
	}
}
