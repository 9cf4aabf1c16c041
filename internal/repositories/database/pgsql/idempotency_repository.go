package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	"github.com/brewpoints/cafe_ledger_app/internal/models"
	"github.com/brewpoints/cafe_ledger_app/internal/utils/mapping"
)

type PgxIdempotencyRepository struct {
	*BaseRepository
}

// NewPgxIdempotencyRepository creates the idempotency side table reader.
func NewPgxIdempotencyRepository(base *BaseRepository) *PgxIdempotencyRepository {
	return &PgxIdempotencyRepository{BaseRepository: base}
}

var _ portsrepo.IdempotencyRepository = (*PgxIdempotencyRepository)(nil)

// FindByKey returns the record for a key, or nil if the key is unseen.
func (r *PgxIdempotencyRepository) FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	var m models.IdempotencyRecord
	err := r.pool.QueryRow(ctx,
		"SELECT idempotency_key, request_hash, transaction_id, first_seen_at FROM idempotency_keys WHERE idempotency_key = $1",
		key).
		Scan(&m.Key, &m.RequestHash, &m.TransactionID, &m.FirstSeenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find idempotency key: %w", err)
	}
	record := mapping.ToDomainIdempotencyRecord(m)
	return &record, nil
}
