package usecase

import (
	"context"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/gcalendar"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// Calendar receives exported planned activities. *gcalendar.Client satisfies it.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

type implUseCase struct {
	l          log.Logger
	programs   repository.ProgramRepository
	planned    repository.PlannedActivityRepository
	activities repository.ActivityRepository
	users      repository.UserRepository
	publisher  eventbus.Publisher
	calendar   Calendar
	cfg        plan.Config
	now        func() time.Time
}

// Option customises the scheduler.
type Option func(*implUseCase)

// WithClock overrides the clock used when no start date is given.
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) { uc.now = now }
}

// WithCalendar enables calendar export for requests that ask for it.
func WithCalendar(c Calendar) Option {
	return func(uc *implUseCase) { uc.calendar = c }
}

// New creates the program scheduler. A nil publisher disables event publishing.
func New(
	l log.Logger,
	programs repository.ProgramRepository,
	planned repository.PlannedActivityRepository,
	activities repository.ActivityRepository,
	users repository.UserRepository,
	publisher eventbus.Publisher,
	cfg plan.Config,
	opts ...Option,
) plan.UseCase {
	if publisher == nil {
		publisher = eventbus.NewNop()
	}
	if cfg.DefaultDurationDays <= 0 {
		cfg.DefaultDurationDays = plan.DefaultDurationDays
	}
	uc := &implUseCase{
		l:          l,
		programs:   programs,
		planned:    planned,
		activities: activities,
		users:      users,
		publisher:  publisher,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
