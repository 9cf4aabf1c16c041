package repositories

import (
	"context"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// LedgerRepository owns the append-only transaction log and its entries.
// There are deliberately no update or delete methods: the write path is
// insert-only and the storage layer is the enforcement point, not convention.
type LedgerRepository interface {
	// SaveTransaction commits one ledger event as a single atomic unit: the
	// transaction row, its two entries, the balance deltas against locked
	// balance rows, and the idempotency record. Any precondition failure
	// (insufficient funds, duplicate reversal, duplicate idempotency key)
	// aborts the whole unit with zero observable side effects.
	SaveTransaction(ctx context.Context, txn domain.LedgerTransaction, entries []domain.LedgerEntry, deltas map[domain.BalanceKey]int64, record domain.IdempotencyRecord) error

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// FindReversalOf returns the reversal transaction referencing the given
	// original, or nil if none exists yet.
	FindReversalOf(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)

	// ListTransactions returns a newest-first page of transactions, optionally
	// restricted to events touching one customer's liability account, plus a
	// cursor for the next page.
	ListTransactions(ctx context.Context, userID *string, limit int, nextToken *string) ([]domain.LedgerTransaction, *string, error)
}
