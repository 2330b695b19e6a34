package postgre

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

const userColumns = `id, email, full_name, token_id, external_user_id, timezone`

func (r *implRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.pool.Exec(ctx, query,
		user.ID, nullIfEmpty(user.Email), user.FullName,
		nullIfEmpty(user.TokenID), nullIfEmpty(user.ExternalUserID), user.Timezone,
	); err != nil {
		return model.User{}, r.mapError(ctx, "CreateUser", err, repository.ErrFailedToInsert)
	}
	return user, nil
}

func (r *implRepository) GetUser(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return model.User{}, r.mapError(ctx, "GetUser", err, repository.ErrFailedToGet)
	}
	return u, nil
}

func (r *implRepository) FindUser(ctx context.Context, sel model.UserSelector) (model.User, error) {
	var cond, arg string
	switch {
	case sel.ID != "":
		return r.GetUser(ctx, sel.ID)
	case sel.Email != "":
		cond, arg = "lower(email) = lower($1)", sel.Email
	case sel.TokenID != "":
		cond, arg = "token_id = $1", sel.TokenID
	case sel.ExternalUserID != "":
		cond, arg = "external_user_id = $1", sel.ExternalUserID
	default:
		return model.User{}, repository.ErrNotFound
	}

	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond+` LIMIT 1`, arg))
	if err != nil {
		return model.User{}, r.mapError(ctx, "FindUser", err, repository.ErrFailedToGet)
	}
	return u, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		u                            model.User
		email, tokenID, externalUser *string
	)
	if err := row.Scan(&u.ID, &email, &u.FullName, &tokenID, &externalUser, &u.Timezone); err != nil {
		return model.User{}, err
	}
	u.Email = deref(email)
	u.TokenID = deref(tokenID)
	u.ExternalUserID = deref(externalUser)
	return u, nil
}
