package repository

import "github.com/asyncopatedsoul/health-protocol/internal/model"

// NoteTimeField selects which note timestamp a date range applies to.
type NoteTimeField string

const (
	NoteTimeCreatedAt NoteTimeField = "createdAtMs"
	NoteTimeLastSaved NoteTimeField = "lastSavedMs"
)

// CreateNoteOptions holds parameters for inserting a note.
type CreateNoteOptions struct {
	UserID      string
	Content     string
	Source      model.NoteSource
	ExternalID  string
	CreatedAtMs int64
}

// UpdateNoteOptions updates only the non-nil fields.
type UpdateNoteOptions struct {
	ID                  string
	Content             *string
	ActivityTimestampMs *int64
}

// ListNotesOptions filters a user's notes. StartMs and EndMs are inclusive bounds on TimeField.
type ListNotesOptions struct {
	UserID    string
	StartMs   *int64
	EndMs     *int64
	TimeField NoteTimeField
	Limit     int
}

// InsertEventOptions holds parameters for appending to the event log.
type InsertEventOptions struct {
	UserID      string
	Type        model.EventType
	Status      model.EventStatus
	TimestampMs int64
	IsVerified  bool
	Context     model.EventContext
	Metadata    model.EventMetadata
}

// ListEventsOptions filters a user's events. Zero values are ignored.
type ListEventsOptions struct {
	UserID  string
	Type    model.EventType
	StartMs *int64
	EndMs   *int64
	Limit   int
}

// InsertActivityOptions holds parameters for adding a catalog activity.
type InsertActivityOptions struct {
	Name         string
	Slug         string
	Description  string
	Category     string
	MuscleGroups []string
	Equipment    []string
}

// ListPlannedActivitiesOptions filters scheduler output.
type ListPlannedActivitiesOptions struct {
	UserID    string
	ProgramID string
	StartMs   *int64
	EndMs     *int64
}

// SearchHit is one ranked search result. Score is in [0, 1].
type SearchHit struct {
	Activity model.Activity
	Score    float64
}

// InRange reports whether ms lies within the optional inclusive bounds.
func InRange(ms int64, start, end *int64) bool {
	if start != nil && ms < *start {
		return false
	}
	if end != nil && ms > *end {
		return false
	}
	return true
}
