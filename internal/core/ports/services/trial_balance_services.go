package services

import (
	"context"
	"time"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// TrialBalanceSvcFacade runs and reads the debit/credit reconciliation.
type TrialBalanceSvcFacade interface {
	// Run aggregates the ledger (or one day when asOf is non-nil), persists
	// the snapshot for that date, and returns it. A MISMATCH result reports;
	// it never repairs.
	Run(ctx context.Context, asOf *time.Time) (*domain.TrialBalanceSnapshot, error)

	GetSnapshot(ctx context.Context, date time.Time) (*domain.TrialBalanceSnapshot, error)
}
