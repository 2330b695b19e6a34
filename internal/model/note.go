package model

// NoteSource identifies where a journal note was written.
type NoteSource string

const (
	NoteSourceLocal NoteSource = "local"
	NoteSourceMemos NoteSource = "memos"
)

// Note is a free-text journal entry. Timestamps are milliseconds since epoch.
type Note struct {
	ID                  string
	UserID              string
	Content             string
	Source              NoteSource
	ExternalID          string
	CreatedAtMs         int64
	LastSavedMs         int64
	ActivityTimestampMs *int64
}

// Timestamp returns the instant an import should stamp on events created from this note:
// the extracted activity time, else the creation time, else fallback.
func (n Note) Timestamp(fallbackMs int64) int64 {
	if n.ActivityTimestampMs != nil && *n.ActivityTimestampMs > 0 {
		return *n.ActivityTimestampMs
	}
	if n.CreatedAtMs > 0 {
		return n.CreatedAtMs
	}
	return fallbackMs
}
