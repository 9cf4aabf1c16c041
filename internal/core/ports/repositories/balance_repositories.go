package repositories

import (
	"context"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// BalanceRepository reads the materialized balance rows. Mutation happens only
// as a byproduct of LedgerRepository.SaveTransaction, never through this
// interface.
type BalanceRepository interface {
	// FindBalance returns the cached balance row, or nil when no entry has
	// ever touched that account.
	FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error)

	// RebuildBalances recomputes every balance row from the entry log inside
	// one transaction and returns the number of rows written. Dev tooling for
	// the materialized-view property; live operations never need it.
	RebuildBalances(ctx context.Context) (int64, error)
}
