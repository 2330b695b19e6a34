package model

// EventType tags the kind of record in the event log.
type EventType string

const (
	EventTypeActivity EventType = "activity"
)

// EventStatus tracks where an activity event came from.
type EventStatus string

const (
	EventStatusImported  EventStatus = "imported"
	EventStatusCompleted EventStatus = "completed"
)

// EventContext links an event to the records it was derived from.
type EventContext struct {
	ActivityID string `json:"activityId,omitempty"`
	NoteID     string `json:"noteId,omitempty"`
	ProgramID  string `json:"programId,omitempty"`
	ProtocolID string `json:"protocolId,omitempty"`
}

// EventMetadata is the denormalised payload stored alongside an event.
type EventMetadata struct {
	Activity *Activity       `json:"activity,omitempty"`
	Parsed   *ParsedActivity `json:"parsed,omitempty"`
}

// Event is one entry in a user's event log.
type Event struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Type        EventType     `json:"type"`
	Status      EventStatus   `json:"status"`
	TimestampMs int64         `json:"timestampMs"`
	IsVerified  bool          `json:"isVerified"`
	Context     EventContext  `json:"context"`
	Metadata    EventMetadata `json:"metadata"`
}
