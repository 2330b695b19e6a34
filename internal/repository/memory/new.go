// Package memory is an in-process Store used by tests and the CLI's --store=memory mode.
package memory

import (
	"sync"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

type implRepository struct {
	mu         sync.RWMutex
	now        func() time.Time
	notes      map[string]model.Note
	events     []model.Event
	activities map[string]model.Activity
	users      map[string]model.User
	programs   map[string]model.Program
	planned    []model.PlannedActivity
}

// Option configures the in-memory store.
type Option func(*implRepository)

// WithClock overrides the clock used for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *implRepository) { r.now = now }
}

// WithActivities seeds the catalog.
func WithActivities(acts ...model.Activity) Option {
	return func(r *implRepository) {
		for _, a := range acts {
			r.activities[a.ID] = a
		}
	}
}

// New returns an empty in-memory Store.
func New(opts ...Option) repository.Store {
	r := &implRepository{
		now:        time.Now,
		notes:      make(map[string]model.Note),
		activities: make(map[string]model.Activity),
		users:      make(map[string]model.User),
		programs:   make(map[string]model.Program),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *implRepository) Close() error { return nil }
