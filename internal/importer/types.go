package importer

import (
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

// ReasonDuplicate marks an activity skipped by the duplicate guard.
const ReasonDuplicate = "duplicate"

// Config holds import defaults applied when an input leaves them unset.
type Config struct {
	Threshold       float64
	SkipDuplicates  bool
	DefaultTimezone string
}

// DefaultConfig skips duplicates and resolves dates in model.DefaultTimezone.
func DefaultConfig() Config {
	return Config{
		SkipDuplicates:  true,
		DefaultTimezone: model.DefaultTimezone,
	}
}

// --- UseCase Inputs ---

// ParseNoteInput is parsed in Timezone, or the configured default when empty.
type ParseNoteInput struct {
	Content  string
	Timezone string
}

type CreateNoteInput struct {
	UserID      string
	Content     string
	CreatedAtMs int64
	// SkipDuplicates is forwarded to the asynchronous import.
	SkipDuplicates *bool
}

// ImportNoteInput selects one note. Nil SkipDuplicates uses Config.SkipDuplicates.
type ImportNoteInput struct {
	NoteID         string
	SkipDuplicates *bool
	Threshold      float64
}

type ImportNotesInput struct {
	NoteIDs        []string
	SkipDuplicates *bool
	Threshold      float64
}

// ImportNotesForUserInput imports every note of one user whose ImportBy timestamp lies in
// the optional inclusive range.
type ImportNotesForUserInput struct {
	User           model.UserSelector
	StartMs        *int64
	EndMs          *int64
	ImportBy       repository.NoteTimeField
	SkipDuplicates *bool
	Threshold      float64
}

// --- UseCase Outputs ---

type ParseNoteOutput struct {
	Date             *time.Time
	RemainingContent string
	Activities       []model.ParsedActivity
}

type CreateNoteOutput struct {
	Note model.Note
}

// ActivityResult is the outcome for one parsed activity of a note.
type ActivityResult struct {
	Parsed   model.ParsedActivity
	Success  bool
	Skipped  bool
	Reason   string
	Error    string
	Activity *model.Activity
	Created  bool
	EventID  string
}

type ImportNoteOutput struct {
	NoteID          string
	ActivitiesFound int
	EventsCreated   int
	Skipped         int
	Errors          int
	Results         []ActivityResult
}

// NoteResult summarises one note inside a bulk import.
type NoteResult struct {
	NoteID          string
	Success         bool
	Error           string
	ActivitiesFound int
	EventsCreated   int
	Skipped         int
	Errors          int
}

type ImportNotesOutput struct {
	UserID          string
	NotesProcessed  int
	ActivitiesFound int
	EventsCreated   int
	Skipped         int
	Errors          int
	Notes           []NoteResult
}
