package repositories

import (
	"context"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// IdempotencyRepository reads the idempotency side table. Records are written
// only inside LedgerRepository.SaveTransaction's atomic unit.
type IdempotencyRepository interface {
	// FindByKey returns the record for a key, or nil if the key is unseen.
	FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
}
