package usecase

import (
	"context"
	"errors"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/observability"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

// ImportNotes imports each note independently; one note's failure never stops the rest.
func (uc *implUseCase) ImportNotes(ctx context.Context, input importer.ImportNotesInput) (importer.ImportNotesOutput, error) {
	out := importer.ImportNotesOutput{Notes: []importer.NoteResult{}}
	for _, id := range input.NoteIDs {
		res, err := uc.ImportNote(ctx, importer.ImportNoteInput{
			NoteID:         id,
			SkipDuplicates: input.SkipDuplicates,
			Threshold:      input.Threshold,
		})
		if err != nil {
			uc.l.Errorf(ctx, "ImportNotes: note=%s: %v", id, err)
		}
		accumulate(&out, id, res, err)
	}
	uc.l.Infof(ctx, "ImportNotes: notes=%d events=%d skipped=%d errors=%d", out.NotesProcessed, out.EventsCreated, out.Skipped, out.Errors)
	return out, nil
}

// ImportNotesForUser imports every note of the selected user inside the optional range.
func (uc *implUseCase) ImportNotesForUser(ctx context.Context, input importer.ImportNotesForUserInput) (importer.ImportNotesOutput, error) {
	if input.User.IsZero() {
		return importer.ImportNotesOutput{}, importer.ErrMissingUser
	}
	field := input.ImportBy
	switch field {
	case "":
		field = repository.NoteTimeCreatedAt
	case repository.NoteTimeCreatedAt, repository.NoteTimeLastSaved:
	default:
		return importer.ImportNotesOutput{}, importer.ErrInvalidImportBy
	}
	if input.StartMs != nil && input.EndMs != nil && *input.StartMs > *input.EndMs {
		return importer.ImportNotesOutput{}, importer.ErrInvalidDateRange
	}

	user, err := uc.users.FindUser(ctx, input.User)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return importer.ImportNotesOutput{}, importer.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "ImportNotesForUser: FindUser: %v", err)
		return importer.ImportNotesOutput{}, err
	}

	notes, err := uc.notes.ListNotes(ctx, repository.ListNotesOptions{
		UserID:    user.ID,
		StartMs:   input.StartMs,
		EndMs:     input.EndMs,
		TimeField: field,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ImportNotesForUser: ListNotes %s: %v", user.ID, err)
		return importer.ImportNotesOutput{}, err
	}
	uc.l.Infof(ctx, "ImportNotesForUser: user=%s notes=%d importBy=%s", user.ID, len(notes), field)

	out := importer.ImportNotesOutput{UserID: user.ID, Notes: []importer.NoteResult{}}
	skip := uc.skipDuplicates(input.SkipDuplicates)
	for _, note := range notes {
		res, err := uc.importLoaded(ctx, note, skip, input.Threshold)
		observability.RecordNoteImported(uc.now(), err)
		if err != nil {
			uc.l.Errorf(ctx, "ImportNotesForUser: note=%s: %v", note.ID, err)
		}
		accumulate(&out, note.ID, res, err)
	}
	uc.l.Infof(ctx, "ImportNotesForUser: user=%s events=%d skipped=%d errors=%d", user.ID, out.EventsCreated, out.Skipped, out.Errors)
	return out, nil
}

func accumulate(out *importer.ImportNotesOutput, noteID string, res importer.ImportNoteOutput, err error) {
	out.NotesProcessed++
	if err != nil {
		out.Notes = append(out.Notes, importer.NoteResult{NoteID: noteID, Error: err.Error()})
		return
	}
	out.ActivitiesFound += res.ActivitiesFound
	out.EventsCreated += res.EventsCreated
	out.Skipped += res.Skipped
	out.Errors += res.Errors
	out.Notes = append(out.Notes, importer.NoteResult{
		NoteID:          noteID,
		Success:         true,
		ActivitiesFound: res.ActivitiesFound,
		EventsCreated:   res.EventsCreated,
		Skipped:         res.Skipped,
		Errors:          res.Errors,
	})
}
