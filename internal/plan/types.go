package plan

import (
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

// DefaultDurationDays applies when neither days nor weeks are requested.
const DefaultDurationDays = 30

// Config holds scheduler defaults.
type Config struct {
	DefaultDurationDays int
	DefaultTimezone     string
	// CalendarID receives exported events. Empty uses the primary calendar.
	CalendarID string
	// EventDuration is the length of exported calendar events.
	EventDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultDurationDays: DefaultDurationDays,
		DefaultTimezone:     model.DefaultTimezone,
		EventDuration:       30 * time.Minute,
	}
}

// ScheduleInput drives one run of Schedule. Activities maps catalog slugs to activities;
// slugs missing from it are not scheduled.
type ScheduleInput struct {
	UserID       string
	DurationDays int
	Start        time.Time
	Location     *time.Location
	Activities   map[string]model.Activity
}

// --- UseCase Inputs ---

// DateLayout is the calendar date format accepted by PlanInput.StartDate.
const DateLayout = "2006-01-02"

// PlanInput selects the program and horizon. DurationDays wins over DurationWeeks.
// StartDate is a calendar date read in the user's timezone and wins over StartMs.
// Without either the plan starts today.
type PlanInput struct {
	UserID           string
	ProgramID        string
	DurationWeeks    int
	DurationDays     int
	StartDate        string
	StartMs          *int64
	ExportToCalendar bool
}

type ListPlannedInput struct {
	UserID    string
	ProgramID string
	StartMs   *int64
	EndMs     *int64
}

type LoadProgramFileInput struct {
	Path string
	// UserID overrides the owner recorded in the file.
	UserID string
}

// --- UseCase Outputs ---

type PlanOutput struct {
	UserID       string
	ProgramID    string
	DurationDays int
	Timezone     string
	Start        time.Time
	Planned      []model.PlannedActivity
	// UnknownSlugs lists program slugs with no catalog activity.
	UnknownSlugs   []string
	CalendarEvents int
	// CalendarSkipped counts planned activities the calendar already held.
	CalendarSkipped int
}
