// Package postgre is a Store backed by PostgreSQL through pgxpool.
package postgre

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

const uniqueViolation = "23505"

type implRepository struct {
	pool *pgxpool.Pool
	l    log.Logger
	now  func() time.Time
}

// New creates a PostgreSQL-backed Store. Call EnsureSchema once before first use.
func New(pool *pgxpool.Pool, l log.Logger) repository.Store {
	if pool == nil {
		panic("repository/postgre: pool is required")
	}
	return &implRepository{pool: pool, l: l, now: time.Now}
}

func (r *implRepository) Close() error {
	r.pool.Close()
	return nil
}

// dsn returns a method-scoped prefix for log lines.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("repository/postgre.%s", method)
}

func (r *implRepository) mapError(ctx context.Context, method string, err, fallback error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
	return fallback
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
