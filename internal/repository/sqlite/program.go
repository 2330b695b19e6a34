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

func (r *implRepository) GetProgram(ctx context.Context, id string) (model.Program, error) {
	var (
		p                model.Program
		userID, authorID sql.NullString
		phases           string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, user_id, author_id, phases FROM programs WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &userID, &authorID, &phases)
	if err != nil {
		return model.Program{}, r.mapError(ctx, "GetProgram", err, repository.ErrFailedToGet)
	}
	p.UserID = userID.String
	p.AuthorID = authorID.String
	if err := json.Unmarshal([]byte(phases), &p.Phases); err != nil {
		return model.Program{}, fmt.Errorf("decode program phases: %w", err)
	}
	return p, nil
}

func (r *implRepository) UpsertProgram(ctx context.Context, program model.Program) (model.Program, error) {
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	phases, err := json.Marshal(program.Phases)
	if err != nil {
		return model.Program{}, fmt.Errorf("encode program phases: %w", err)
	}

	const query = `INSERT INTO programs (id, name, user_id, author_id, phases) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			user_id = excluded.user_id,
			author_id = excluded.author_id,
			phases = excluded.phases`
	if _, err := r.db.ExecContext(ctx, query,
		program.ID, program.Name, nullString(program.UserID), nullString(program.AuthorID), string(phases),
	); err != nil {
		return model.Program{}, r.mapError(ctx, "UpsertProgram", err, repository.ErrFailedToInsert)
	}
	return program, nil
}

func (r *implRepository) InsertPlannedActivities(ctx context.Context, items []model.PlannedActivity) ([]model.PlannedActivity, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, r.mapError(ctx, "InsertPlannedActivities", err, repository.ErrFailedToInsert)
	}
	defer tx.Rollback()

	const query = `INSERT INTO planned_activities
		(id, user_id, activity_id, activity_slug, program_id, protocol_id, phase, planned_time_utc_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	out := make([]model.PlannedActivity, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, query,
			it.ID, it.UserID, it.ActivityID, it.ActivitySlug, it.ProgramID,
			nullString(it.ProtocolID), nullString(it.Phase), it.PlannedTimeUtcMs,
		); err != nil {
			return nil, r.mapError(ctx, "InsertPlannedActivities", err, repository.ErrFailedToInsert)
		}
		out[i] = it
	}

	if err := tx.Commit(); err != nil {
		return nil, r.mapError(ctx, "InsertPlannedActivities", err, repository.ErrFailedToInsert)
	}
	return out, nil
}

func (r *implRepository) ListPlannedActivities(ctx context.Context, opt repository.ListPlannedActivitiesOptions) ([]model.PlannedActivity, error) {
	b := &whereBuilder{}
	if opt.UserID != "" {
		b.add("user_id = ?", opt.UserID)
	}
	if opt.ProgramID != "" {
		b.add("program_id = ?", opt.ProgramID)
	}
	b.addRange("planned_time_utc_ms", opt.StartMs, opt.EndMs)

	query := fmt.Sprintf(`SELECT id, user_id, activity_id, activity_slug, program_id, protocol_id, phase, planned_time_utc_ms
		FROM planned_activities WHERE %s ORDER BY planned_time_utc_ms ASC, rowid ASC`, b.String())
	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, r.mapError(ctx, "ListPlannedActivities", err, repository.ErrFailedToList)
	}
	defer rows.Close()

	var out []model.PlannedActivity
	for rows.Next() {
		var (
			p                 model.PlannedActivity
			protocolID, phase sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.ActivityID, &p.ActivitySlug, &p.ProgramID,
			&protocolID, &phase, &p.PlannedTimeUtcMs); err != nil {
			return nil, r.mapError(ctx, "ListPlannedActivities", err, repository.ErrFailedToList)
		}
		p.ProtocolID = protocolID.String
		p.Phase = phase.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(ctx, "ListPlannedActivities", err, repository.ErrFailedToList)
	}
	return out, nil
}
