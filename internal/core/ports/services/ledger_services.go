package services

import (
	"context"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
)

// LedgerSvcFacade exposes the money-moving operation handlers and the
// transaction reads. Every mutation takes the caller-supplied idempotency key
// and the acting user extracted at the edge.
type LedgerSvcFacade interface {
	Topup(ctx context.Context, req dto.TopupRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error)
	Charge(ctx context.Context, req dto.ChargeRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error)
	Bonus(ctx context.Context, req dto.BonusRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error)
	Reverse(ctx context.Context, transactionID string, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error)

	GetTransaction(ctx context.Context, transactionID string) (*domain.LedgerTransaction, []domain.LedgerEntry, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
