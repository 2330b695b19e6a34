package postgre

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

const noteColumns = `id, user_id, content, source, external_id, created_at_ms, last_saved_ms, activity_timestamp_ms`

func (r *implRepository) CreateNote(ctx context.Context, opt repository.CreateNoteOptions) (model.Note, error) {
	created := opt.CreatedAtMs
	if created == 0 {
		created = r.now().UnixMilli()
	}
	source := opt.Source
	if source == "" {
		source = model.NoteSourceLocal
	}

	note := model.Note{
		ID:          uuid.NewString(),
		UserID:      opt.UserID,
		Content:     opt.Content,
		Source:      source,
		ExternalID:  opt.ExternalID,
		CreatedAtMs: created,
		LastSavedMs: created,
	}

	const query = `INSERT INTO notes (` + noteColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)`
	if _, err := r.pool.Exec(ctx, query,
		note.ID, note.UserID, note.Content, string(note.Source), nullIfEmpty(note.ExternalID),
		note.CreatedAtMs, note.LastSavedMs,
	); err != nil {
		return model.Note{}, r.mapError(ctx, "CreateNote", err, repository.ErrFailedToInsert)
	}
	return note, nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	note, err := scanNote(r.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		return model.Note{}, r.mapError(ctx, "GetNote", err, repository.ErrFailedToGet)
	}
	return note, nil
}

func (r *implRepository) UpdateNote(ctx context.Context, opt repository.UpdateNoteOptions) (model.Note, error) {
	b := &whereBuilder{}
	var sets []string
	if opt.Content != nil {
		sets = append(sets, "content = "+b.next(*opt.Content))
	}
	if opt.ActivityTimestampMs != nil {
		sets = append(sets, "activity_timestamp_ms = "+b.next(*opt.ActivityTimestampMs))
	}
	sets = append(sets, "last_saved_ms = "+b.next(r.now().UnixMilli()))
	b.add("id = $%d", opt.ID)

	query := fmt.Sprintf("UPDATE notes SET %s WHERE %s RETURNING %s", strings.Join(sets, ", "), b.String(), noteColumns)
	note, err := scanNote(r.pool.QueryRow(ctx, query, b.args...))
	if err != nil {
		return model.Note{}, r.mapError(ctx, "UpdateNote", err, repository.ErrFailedToUpdate)
	}
	return note, nil
}

func (r *implRepository) ListNotes(ctx context.Context, opt repository.ListNotesOptions) ([]model.Note, error) {
	b := &whereBuilder{}
	if opt.UserID != "" {
		b.add("user_id = $%d", opt.UserID)
	}
	b.addRange(noteTimeColumn(opt.TimeField), opt.StartMs, opt.EndMs)

	query := fmt.Sprintf("SELECT %s FROM notes WHERE %s ORDER BY created_at_ms ASC, id ASC", noteColumns, b.String())
	if opt.Limit > 0 {
		query += " LIMIT " + b.next(opt.Limit)
	}

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.mapError(ctx, "ListNotes", err, repository.ErrFailedToList)
	}
	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Note, error) {
		return scanNote(row)
	})
	if err != nil {
		return nil, r.mapError(ctx, "ListNotes", err, repository.ErrFailedToList)
	}
	return notes, nil
}

func scanNote(row pgx.Row) (model.Note, error) {
	var (
		note       model.Note
		source     string
		externalID *string
	)
	if err := row.Scan(&note.ID, &note.UserID, &note.Content, &source, &externalID,
		&note.CreatedAtMs, &note.LastSavedMs, &note.ActivityTimestampMs); err != nil {
		return model.Note{}, err
	}
	note.Source = model.NoteSource(source)
	note.ExternalID = deref(externalID)
	return note, nil
}
