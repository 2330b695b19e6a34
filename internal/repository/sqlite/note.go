package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

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

	const query = `INSERT INTO notes (` + noteColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`
	if _, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Content, string(note.Source), nullString(note.ExternalID),
		note.CreatedAtMs, note.LastSavedMs,
	); err != nil {
		return model.Note{}, r.mapError(ctx, "CreateNote", err, repository.ErrFailedToInsert)
	}
	return note, nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ?`
	note, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Note{}, r.mapError(ctx, "GetNote", err, repository.ErrFailedToGet)
	}
	return note, nil
}

func (r *implRepository) UpdateNote(ctx context.Context, opt repository.UpdateNoteOptions) (model.Note, error) {
	var sets []string
	var args []any
	if opt.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *opt.Content)
	}
	if opt.ActivityTimestampMs != nil {
		sets = append(sets, "activity_timestamp_ms = ?")
		args = append(args, *opt.ActivityTimestampMs)
	}
	sets = append(sets, "last_saved_ms = ?")
	args = append(args, r.now().UnixMilli(), opt.ID)

	query := fmt.Sprintf("UPDATE notes SET %s WHERE id = ?", joinComma(sets))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return model.Note{}, r.mapError(ctx, "UpdateNote", err, repository.ErrFailedToUpdate)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Note{}, repository.ErrNotFound
	}
	return r.GetNote(ctx, opt.ID)
}

func (r *implRepository) ListNotes(ctx context.Context, opt repository.ListNotesOptions) ([]model.Note, error) {
	b := &whereBuilder{}
	if opt.UserID != "" {
		b.add("user_id = ?", opt.UserID)
	}
	b.addRange(noteTimeColumn(opt.TimeField), opt.StartMs, opt.EndMs)

	query := fmt.Sprintf("SELECT %s FROM notes WHERE %s ORDER BY created_at_ms ASC, id ASC", noteColumns, b.String())
	args := b.args
	if opt.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapError(ctx, "ListNotes", err, repository.ErrFailedToList)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, r.mapError(ctx, "ListNotes", err, repository.ErrFailedToList)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(ctx, "ListNotes", err, repository.ErrFailedToList)
	}
	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var (
		note       model.Note
		source     string
		externalID sql.NullString
		activityTs sql.NullInt64
	)
	if err := row.Scan(&note.ID, &note.UserID, &note.Content, &source, &externalID,
		&note.CreatedAtMs, &note.LastSavedMs, &activityTs); err != nil {
		return model.Note{}, err
	}
	note.Source = model.NoteSource(source)
	note.ExternalID = externalID.String
	if activityTs.Valid {
		ts := activityTs.Int64
		note.ActivityTimestampMs = &ts
	}
	return note, nil
}
