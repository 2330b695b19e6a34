package postgre

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

const eventColumns = `id, user_id, type, status, timestamp_ms, is_verified, activity_id, note_id, program_id, protocol_id, metadata`

func (r *implRepository) InsertEvent(ctx context.Context, opt repository.InsertEventOptions) (model.Event, error) {
	ts := opt.TimestampMs
	if ts == 0 {
		ts = r.now().UnixMilli()
	}
	ev := model.Event{
		ID:          uuid.NewString(),
		UserID:      opt.UserID,
		Type:        opt.Type,
		Status:      opt.Status,
		TimestampMs: ts,
		IsVerified:  opt.IsVerified,
		Context:     opt.Context,
		Metadata:    opt.Metadata,
	}

	metadata, err := json.Marshal(ev.Metadata)
	if err != nil {
		return model.Event{}, fmt.Errorf("encode event metadata: %w", err)
	}

	const query = `INSERT INTO events (` + eventColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.pool.Exec(ctx, query,
		ev.ID, ev.UserID, string(ev.Type), string(ev.Status), ev.TimestampMs, ev.IsVerified,
		nullIfEmpty(ev.Context.ActivityID), nullIfEmpty(ev.Context.NoteID),
		nullIfEmpty(ev.Context.ProgramID), nullIfEmpty(ev.Context.ProtocolID),
		metadata,
	); err != nil {
		return model.Event{}, r.mapError(ctx, "InsertEvent", err, repository.ErrFailedToInsert)
	}
	return ev, nil
}

func (r *implRepository) ListEventsForUser(ctx context.Context, opt repository.ListEventsOptions) ([]model.Event, error) {
	b := &whereBuilder{}
	b.add("user_id = $%d", opt.UserID)
	if opt.Type != "" {
		b.add("type = $%d", string(opt.Type))
	}
	b.addRange("timestamp_ms", opt.StartMs, opt.EndMs)

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY timestamp_ms ASC, id ASC", eventColumns, b.String())
	if opt.Limit > 0 {
		query += " LIMIT " + b.next(opt.Limit)
	}

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.mapError(ctx, "ListEventsForUser", err, repository.ErrFailedToList)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Event, error) {
		return scanEvent(row)
	})
	if err != nil {
		return nil, r.mapError(ctx, "ListEventsForUser", err, repository.ErrFailedToList)
	}
	return events, nil
}

func (r *implRepository) DeleteEventsForNote(ctx context.Context, noteID string) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE note_id = $1`, noteID)
	if err != nil {
		return 0, r.mapError(ctx, "DeleteEventsForNote", err, repository.ErrFailedToDelete)
	}
	return int(tag.RowsAffected()), nil
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var (
		ev                                        model.Event
		typ, status                               string
		metadata                                  []byte
		activityID, noteID, programID, protocolID *string
	)
	if err := row.Scan(&ev.ID, &ev.UserID, &typ, &status, &ev.TimestampMs, &ev.IsVerified,
		&activityID, &noteID, &programID, &protocolID, &metadata); err != nil {
		return model.Event{}, err
	}
	ev.Type = model.EventType(typ)
	ev.Status = model.EventStatus(status)
	ev.Context = model.EventContext{
		ActivityID: deref(activityID),
		NoteID:     deref(noteID),
		ProgramID:  deref(programID),
		ProtocolID: deref(protocolID),
	}
	if err := json.Unmarshal(metadata, &ev.Metadata); err != nil {
		return model.Event{}, fmt.Errorf("decode event metadata: %w", err)
	}
	return ev, nil
}
