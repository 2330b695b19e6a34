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

func (r *implRepository) GetProgram(ctx context.Context, id string) (model.Program, error) {
	var (
		p                model.Program
		userID, authorID *string
		phases           []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, user_id, author_id, phases FROM programs WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &userID, &authorID, &phases)
	if err != nil {
		return model.Program{}, r.mapError(ctx, "GetProgram", err, repository.ErrFailedToGet)
	}
	p.UserID = deref(userID)
	p.AuthorID = deref(authorID)
	if err := json.Unmarshal(phases, &p.Phases); err != nil {
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

	const query = `INSERT INTO programs (id, name, user_id, author_id, phases) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			user_id = EXCLUDED.user_id,
			author_id = EXCLUDED.author_id,
			phases = EXCLUDED.phases`
	if _, err := r.pool.Exec(ctx, query,
		program.ID, program.Name, nullIfEmpty(program.UserID), nullIfEmpty(program.AuthorID), phases,
	); err != nil {
		return model.Program{}, r.mapError(ctx, "UpsertProgram", err, repository.ErrFailedToInsert)
	}
	return program, nil
}

func (r *implRepository) InsertPlannedActivities(ctx context.Context, items []model.PlannedActivity) ([]model.PlannedActivity, error) {
	out := make([]model.PlannedActivity, len(items))
	batch := &pgx.Batch{}
	const query = `INSERT INTO planned_activities
		(id, user_id, activity_id, activity_slug, program_id, protocol_id, phase, planned_time_utc_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		batch.Queue(query, it.ID, it.UserID, it.ActivityID, it.ActivitySlug, it.ProgramID,
			nullIfEmpty(it.ProtocolID), nullIfEmpty(it.Phase), it.PlannedTimeUtcMs)
		out[i] = it
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, r.mapError(ctx, "InsertPlannedActivities", err, repository.ErrFailedToInsert)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, r.mapError(ctx, "InsertPlannedActivities", err, repository.ErrFailedToInsert)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, r.mapError(ctx, "InsertPlannedActivities", err, repository.ErrFailedToInsert)
	}
	return out, nil
}

func (r *implRepository) ListPlannedActivities(ctx context.Context, opt repository.ListPlannedActivitiesOptions) ([]model.PlannedActivity, error) {
	b := &whereBuilder{}
	if opt.UserID != "" {
		b.add("user_id = $%d", opt.UserID)
	}
	if opt.ProgramID != "" {
		b.add("program_id = $%d", opt.ProgramID)
	}
	b.addRange("planned_time_utc_ms", opt.StartMs, opt.EndMs)

	query := fmt.Sprintf(`SELECT id, user_id, activity_id, activity_slug, program_id, protocol_id, phase, planned_time_utc_ms
		FROM planned_activities WHERE %s ORDER BY planned_time_utc_ms ASC, seq ASC`, b.String())
	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.mapError(ctx, "ListPlannedActivities", err, repository.ErrFailedToList)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PlannedActivity, error) {
		var (
			p                 model.PlannedActivity
			protocolID, phase *string
		)
		err := row.Scan(&p.ID, &p.UserID, &p.ActivityID, &p.ActivitySlug, &p.ProgramID,
			&protocolID, &phase, &p.PlannedTimeUtcMs)
		p.ProtocolID = deref(protocolID)
		p.Phase = deref(phase)
		return p, err
	})
	if err != nil {
		return nil, r.mapError(ctx, "ListPlannedActivities", err, repository.ErrFailedToList)
	}
	return out, nil
}
