package usecase

import (
	"context"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

// CreateNote stores a local note and publishes note.saved so a consumer imports it.
func (uc *implUseCase) CreateNote(ctx context.Context, input importer.CreateNoteInput) (importer.CreateNoteOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return importer.CreateNoteOutput{}, importer.ErrMissingUser
	}
	if strings.TrimSpace(input.Content) == "" {
		return importer.CreateNoteOutput{}, importer.ErrEmptyContent
	}

	createdAt := input.CreatedAtMs
	if createdAt <= 0 {
		createdAt = uc.now().UnixMilli()
	}

	note, err := uc.notes.CreateNote(ctx, repository.CreateNoteOptions{
		UserID:      input.UserID,
		Content:     input.Content,
		Source:      model.NoteSourceLocal,
		CreatedAtMs: createdAt,
	})
	if err != nil {
		uc.l.Errorf(ctx, "CreateNote: user=%s: %v", input.UserID, err)
		return importer.CreateNoteOutput{}, err
	}

	if err := uc.publisher.PublishNoteSaved(ctx, eventbus.NoteSaved{
		NoteID:         note.ID,
		UserID:         note.UserID,
		SkipDuplicates: input.SkipDuplicates,
	}); err != nil {
		uc.l.Warnf(ctx, "CreateNote: publish note.saved %s: %v", note.ID, err)
	}

	return importer.CreateNoteOutput{Note: note}, nil
}
