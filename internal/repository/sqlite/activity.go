package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

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

	const query = `INSERT INTO activities (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		act.ID, act.Name, nullString(act.Slug), act.Description, act.Category,
		mustJSON(nonNil(act.MuscleGroups)), mustJSON(nonNil(act.Equipment)), act.CreatedAtMs,
	); err != nil {
		return model.Activity{}, r.mapError(ctx, "InsertActivity", err, repository.ErrFailedToInsert)
	}
	return act, nil
}

func (r *implRepository) GetActivity(ctx context.Context, id string) (model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	act, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Activity{}, r.mapError(ctx, "GetActivity", err, repository.ErrFailedToGet)
	}
	return act, nil
}

func (r *implRepository) GetActivityBySlug(ctx context.Context, slug string) (model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE slug = ?`
	act, err := scanActivity(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		return model.Activity{}, r.mapError(ctx, "GetActivityBySlug", err, repository.ErrFailedToGet)
	}
	return act, nil
}

func (r *implRepository) FindActivitiesByName(ctx context.Context, name string, limit int) ([]model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE instr(lower(name), lower(?)) > 0
		ORDER BY name ASC, id ASC`
	args := []any{name}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return r.queryActivities(ctx, "FindActivitiesByName", query, args...)
}

func (r *implRepository) ListActivities(ctx context.Context) ([]model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY name ASC, id ASC`
	return r.queryActivities(ctx, "ListActivities", query)
}

func (r *implRepository) queryActivities(ctx context.Context, method, query string, args ...any) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapError(ctx, method, err, repository.ErrFailedToList)
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, r.mapError(ctx, method, err, repository.ErrFailedToList)
		}
		out = append(out, act)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(ctx, method, err, repository.ErrFailedToList)
	}
	return out, nil
}

func scanActivity(row rowScanner) (model.Activity, error) {
	var (
		act                     model.Activity
		slug                    sql.NullString
		muscleGroups, equipment string
	)
	if err := row.Scan(&act.ID, &act.Name, &slug, &act.Description, &act.Category,
		&muscleGroups, &equipment, &act.CreatedAtMs); err != nil {
		return model.Activity{}, err
	}
	act.Slug = slug.String
	act.MuscleGroups = decodeStrings(muscleGroups)
	act.Equipment = decodeStrings(equipment)
	return act, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
