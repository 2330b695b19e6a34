package importer

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// ParseNote runs the journal parser without touching storage.
	ParseNote(ctx context.Context, input ParseNoteInput) (ParseNoteOutput, error)
	// CreateNote stores a journal note and announces it on the event bus.
	CreateNote(ctx context.Context, input CreateNoteInput) (CreateNoteOutput, error)

	// Import
	ImportNote(ctx context.Context, input ImportNoteInput) (ImportNoteOutput, error)
	ImportNotes(ctx context.Context, input ImportNotesInput) (ImportNotesOutput, error)
	ImportNotesForUser(ctx context.Context, input ImportNotesForUserInput) (ImportNotesOutput, error)
}
