package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// PGXPool is the narrow pool surface the repositories depend on. Satisfied by
// *pgxpool.Pool in production and by pgxmock in tests.
type PGXPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BaseRepository holds the shared database handle for the concrete
// repositories.
type BaseRepository struct {
	pool PGXPool
}

// NewBaseRepository creates a base repository around a pool.
func NewBaseRepository(pool PGXPool) *BaseRepository {
	return &BaseRepository{pool: pool}
}

// pgErrorDetail extracts the Postgres error with its constraint name, if any.
func pgErrorDetail(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
