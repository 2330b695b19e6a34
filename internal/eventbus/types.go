package eventbus

import "github.com/asyncopatedsoul/health-protocol/internal/model"

const (
	EventTypeNoteSaved         = "note.saved"
	EventTypeActivityCompleted = "activity.completed"
	EventTypePlannedCreated    = "planned_activity.created"
)

// Topics names the broker topics per stream.
type Topics struct {
	Notes   string
	Events  string
	Planned string
}

// NoteSaved asks the consumer to import a note.
type NoteSaved struct {
	NoteID         string `json:"noteId"`
	UserID         string `json:"userId,omitempty"`
	SkipDuplicates *bool  `json:"skipDuplicates,omitempty"`
}

// PlannedBatch is the payload of EventTypePlannedCreated.
type PlannedBatch struct {
	UserID    string                  `json:"userId"`
	ProgramID string                  `json:"programId"`
	Items     []model.PlannedActivity `json:"items"`
}
