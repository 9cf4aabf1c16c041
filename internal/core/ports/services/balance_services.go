package services

import (
	"context"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// BalanceSvcFacade reads customer wallet balances and hosts the dev-only
// rebuild of the materialized balance rows.
type BalanceSvcFacade interface {
	// GetCustomerBalance returns the liability balance for one customer.
	// A customer with no ledger history gets a zero balance, not an error.
	GetCustomerBalance(ctx context.Context, userID string) (*domain.AccountBalance, error)

	RebuildBalances(ctx context.Context) (int64, error)
}
