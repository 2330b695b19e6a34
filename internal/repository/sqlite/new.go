// Package sqlite is the default local Store, backed by modernc.org/sqlite through database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time
}

// New creates a SQLite-backed Store. The schema must already exist; see EnsureSchema.
func New(db *sql.DB, l log.Logger) repository.Store {
	if db == nil {
		panic("repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l, now: time.Now}
}

func (r *implRepository) Close() error {
	return r.db.Close()
}

// dsn returns a method-scoped prefix for log lines.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("repository/sqlite.%s", method)
}

// mapError folds driver errors into repository sentinels.
func (r *implRepository) mapError(ctx context.Context, method string, err, fallback error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrDuplicate
	}
	r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
	return fallback
}
