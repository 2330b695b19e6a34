package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

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

	const query = `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.UserID, string(ev.Type), string(ev.Status), ev.TimestampMs, ev.IsVerified,
		nullString(ev.Context.ActivityID), nullString(ev.Context.NoteID),
		nullString(ev.Context.ProgramID), nullString(ev.Context.ProtocolID),
		string(metadata),
	); err != nil {
		return model.Event{}, r.mapError(ctx, "InsertEvent", err, repository.ErrFailedToInsert)
	}
	return ev, nil
}

func (r *implRepository) ListEventsForUser(ctx context.Context, opt repository.ListEventsOptions) ([]model.Event, error) {
	b := &whereBuilder{}
	b.add("user_id = ?", opt.UserID)
	if opt.Type != "" {
		b.add("type = ?", string(opt.Type))
	}
	b.addRange("timestamp_ms", opt.StartMs, opt.EndMs)

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY timestamp_ms ASC, id ASC", eventColumns, b.String())
	args := b.args
	if opt.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapError(ctx, "ListEventsForUser", err, repository.ErrFailedToList)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, r.mapError(ctx, "ListEventsForUser", err, repository.ErrFailedToList)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(ctx, "ListEventsForUser", err, repository.ErrFailedToList)
	}
	return events, nil
}

func (r *implRepository) DeleteEventsForNote(ctx context.Context, noteID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE note_id = ?`, noteID)
	if err != nil {
		return 0, r.mapError(ctx, "DeleteEventsForNote", err, repository.ErrFailedToDelete)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanEvent(row rowScanner) (model.Event, error) {
	var (
		ev                                        model.Event
		typ, status, metadata                     string
		activityID, noteID, programID, protocolID sql.NullString
	)
	if err := row.Scan(&ev.ID, &ev.UserID, &typ, &status, &ev.TimestampMs, &ev.IsVerified,
		&activityID, &noteID, &programID, &protocolID, &metadata); err != nil {
		return model.Event{}, err
	}
	ev.Type = model.EventType(typ)
	ev.Status = model.EventStatus(status)
	ev.Context = model.EventContext{
		ActivityID: activityID.String,
		NoteID:     noteID.String,
		ProgramID:  programID.String,
		ProtocolID: protocolID.String,
	}
	if err := json.Unmarshal([]byte(metadata), &ev.Metadata); err != nil {
		return model.Event{}, fmt.Errorf("decode event metadata: %w", err)
	}
	return ev, nil
}
