package usecase

import (
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type implUseCase struct {
	l          log.Logger
	notes      repository.NoteRepository
	events     repository.EventRepository
	activities repository.ActivityRepository
	users      repository.UserRepository
	resolver   activity.UseCase
	publisher  eventbus.Publisher
	cfg        importer.Config
	now        func() time.Time
}

// Option customises the importer.
type Option func(*implUseCase)

// WithClock overrides the clock used when a note carries no timestamp.
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) { uc.now = now }
}

// New creates the note importer. notes may come from a different backend than the rest of
// the store. A nil publisher disables event publishing.
func New(
	l log.Logger,
	notes repository.NoteRepository,
	events repository.EventRepository,
	activities repository.ActivityRepository,
	users repository.UserRepository,
	resolver activity.UseCase,
	publisher eventbus.Publisher,
	cfg importer.Config,
	opts ...Option,
) importer.UseCase {
	if publisher == nil {
		publisher = eventbus.NewNop()
	}
	uc := &implUseCase{
		l:          l,
		notes:      notes,
		events:     events,
		activities: activities,
		users:      users,
		resolver:   resolver,
		publisher:  publisher,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
