package repository

import (
	"context"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

// Store is the full storage collaborator: every record the importer and scheduler read or write.
type Store interface {
	NoteRepository
	EventRepository
	ActivityRepository
	UserRepository
	ProgramRepository
	PlannedActivityRepository
	Close() error
}

// NoteRepository reads and updates journal notes.
type NoteRepository interface {
	CreateNote(ctx context.Context, opt CreateNoteOptions) (model.Note, error)
	GetNote(ctx context.Context, id string) (model.Note, error)
	UpdateNote(ctx context.Context, opt UpdateNoteOptions) (model.Note, error)
	ListNotes(ctx context.Context, opt ListNotesOptions) ([]model.Note, error)
}

// EventRepository owns the per-user event log.
type EventRepository interface {
	InsertEvent(ctx context.Context, opt InsertEventOptions) (model.Event, error)
	ListEventsForUser(ctx context.Context, opt ListEventsOptions) ([]model.Event, error)
	DeleteEventsForNote(ctx context.Context, noteID string) (int, error)
}

// ActivityRepository is the canonical activity catalog.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, opt InsertActivityOptions) (model.Activity, error)
	GetActivity(ctx context.Context, id string) (model.Activity, error)
	GetActivityBySlug(ctx context.Context, slug string) (model.Activity, error)
	// FindActivitiesByName is a case-insensitive substring search ordered by name.
	FindActivitiesByName(ctx context.Context, name string, limit int) ([]model.Activity, error)
	ListActivities(ctx context.Context) ([]model.Activity, error)
}

// UserRepository resolves users and their timezone.
type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	FindUser(ctx context.Context, sel model.UserSelector) (model.User, error)
}

// ProgramRepository stores declarative training programs.
type ProgramRepository interface {
	GetProgram(ctx context.Context, id string) (model.Program, error)
	UpsertProgram(ctx context.Context, program model.Program) (model.Program, error)
}

// PlannedActivityRepository persists scheduler output.
type PlannedActivityRepository interface {
	InsertPlannedActivities(ctx context.Context, items []model.PlannedActivity) ([]model.PlannedActivity, error)
	ListPlannedActivities(ctx context.Context, opt ListPlannedActivitiesOptions) ([]model.PlannedActivity, error)
}

// SearchRepository is the optional fuzzy full-text index over the catalog.
type SearchRepository interface {
	// Health reports whether the index can currently serve queries.
	Health(ctx context.Context) bool
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
	AddDocuments(ctx context.Context, activities []model.Activity) error
	RemoveDocuments(ctx context.Context, ids []string) error
	ConfigureIndex(ctx context.Context) error
	DocumentCount(ctx context.Context) (int, error)
}
