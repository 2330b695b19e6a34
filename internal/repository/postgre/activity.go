package postgre

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

const activityColumns = `id, name, slug, description, category, muscle_groups, equipment, created_at_ms`

func (r *implRepository) InsertActivity(ctx context.Context, opt repository.InsertActivityOptions) (model.Activity, error) {
	act := model.Activity{
		ID:           uuid.NewString(),
		Name:         opt.Name,
		Slug:         opt.Slug,
		Description:  opt.Description,
		Category:     opt.Category,
		MuscleGroups: opt.MuscleGroups,
		Equipment:    opt.Equipment,
		CreatedAtMs:  r.now().UnixMilli(),
	}

	const query = `INSERT INTO activities (` + activityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.pool.Exec(ctx, query,
		act.ID, act.Name, nullIfEmpty(act.Slug), act.Description, act.Category,
		nonNil(act.MuscleGroups), nonNil(act.Equipment), act.CreatedAtMs,
	); err != nil {
		return model.Activity{}, r.mapError(ctx, "InsertActivity", err, repository.ErrFailedToInsert)
	}
	return act, nil
}

func (r *implRepository) GetActivity(ctx context.Context, id string) (model.Activity, error) {
	act, err := scanActivity(r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		return model.Activity{}, r.mapError(ctx, "GetActivity", err, repository.ErrFailedToGet)
	}
	return act, nil
}

func (r *implRepository) GetActivityBySlug(ctx context.Context, slug string) (model.Activity, error) {
	act, err := scanActivity(r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE slug = $1`, slug))
	if err != nil {
		return model.Activity{}, r.mapError(ctx, "GetActivityBySlug", err, repository.ErrFailedToGet)
	}
	return act, nil
}

func (r *implRepository) FindActivitiesByName(ctx context.Context, name string, limit int) ([]model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE strpos(lower(name), lower($1)) > 0
		ORDER BY name ASC, id ASC`
	args := []any{name}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return r.queryActivities(ctx, "FindActivitiesByName", query, args...)
}

func (r *implRepository) ListActivities(ctx context.Context) ([]model.Activity, error) {
	return r.queryActivities(ctx, "ListActivities", `SELECT `+activityColumns+` FROM activities ORDER BY name ASC, id ASC`)
}

func (r *implRepository) queryActivities(ctx context.Context, method, query string, args ...any) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapError(ctx, method, err, repository.ErrFailedToList)
	}
	acts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Activity, error) {
		return scanActivity(row)
	})
	if err != nil {
		return nil, r.mapError(ctx, method, err, repository.ErrFailedToList)
	}
	return acts, nil
}

func scanActivity(row pgx.Row) (model.Activity, error) {
	var (
		act  model.Activity
		slug *string
	)
	if err := row.Scan(&act.ID, &act.Name, &slug, &act.Description, &act.Category,
		&act.MuscleGroups, &act.Equipment, &act.CreatedAtMs); err != nil {
		return model.Activity{}, err
	}
	act.Slug = deref(slug)
	if len(act.MuscleGroups) == 0 {
		act.MuscleGroups = nil
	}
	if len(act.Equipment) == 0 {
		act.Equipment = nil
	}
	return act, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
