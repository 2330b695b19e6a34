package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

const userColumns = `id, email, full_name, token_id, external_user_id, timezone`

func (r *implRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		user.ID, nullString(user.Email), user.FullName,
		nullString(user.TokenID), nullString(user.ExternalUserID), user.Timezone,
	); err != nil {
		return model.User{}, r.mapError(ctx, "CreateUser", err, repository.ErrFailedToInsert)
	}
	return user, nil
}

func (r *implRepository) GetUser(ctx context.Context, id string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.User{}, r.mapError(ctx, "GetUser", err, repository.ErrFailedToGet)
	}
	return u, nil
}

// FindUser matches on the first non-empty selector field in the order id, email, token, external id.
func (r *implRepository) FindUser(ctx context.Context, sel model.UserSelector) (model.User, error) {
	var cond, arg string
	switch {
	case sel.ID != "":
		return r.GetUser(ctx, sel.ID)
	case sel.Email != "":
		cond, arg = "lower(email) = lower(?)", sel.Email
	case sel.TokenID != "":
		cond, arg = "token_id = ?", sel.TokenID
	case sel.ExternalUserID != "":
		cond, arg = "external_user_id = ?", sel.ExternalUserID
	default:
		return model.User{}, repository.ErrNotFound
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + cond + ` LIMIT 1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return model.User{}, r.mapError(ctx, "FindUser", err, repository.ErrFailedToGet)
	}
	return u, nil
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u                            model.User
		email, tokenID, externalUser sql.NullString
	)
	if err := row.Scan(&u.ID, &email, &u.FullName, &tokenID, &externalUser, &u.Timezone); err != nil {
		return model.User{}, err
	}
	u.Email = email.String
	u.TokenID = tokenID.String
	u.ExternalUserID = externalUser.String
	return u, nil
}
