package gcalendar

import "time"

// Private extended property keys stamped on exported planned activities.
const (
	PropProgramID         = "programId"
	PropActivitySlug      = "activitySlug"
	PropPlannedActivityID = "plannedActivityId"
)

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // IANA name, e.g. "America/Los_Angeles"
	// PrivateProperties are stored as private extended properties and can be filtered on
	// with ListEventsRequest.PrivateProperties.
	PrivateProperties map[string]string
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID                string
	Summary           string
	Description       string
	HTMLLink          string
	StartTime         time.Time
	EndTime           time.Time
	PrivateProperties map[string]string
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
	// PrivateProperties restricts results to events carrying every key=value pair.
	PrivateProperties map[string]string
}
