package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
)

type trialBalanceService struct {
	trialBalanceRepo portsrepo.TrialBalanceRepository
}

// NewTrialBalanceService creates the reconciliation service.
func NewTrialBalanceService(trialBalanceRepo portsrepo.TrialBalanceRepository) portssvc.TrialBalanceSvcFacade {
	return &trialBalanceService{trialBalanceRepo: trialBalanceRepo}
}

var _ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)

// Run sums both sides of the entry log, records the snapshot under the run
// date, and reports the outcome. It never mutates ledger data; a mismatch is
// evidence for an operator, not something to repair in place.
func (s *trialBalanceService) Run(ctx context.Context, asOf *time.Time) (*domain.TrialBalanceSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sumDebit, sumCredit, err := s.trialBalanceRepo.SumEntries(ctx, asOf)
	if err != nil {
		logger.Error("Failed to sum ledger entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sum ledger entries: %w", err)
	}

	snapshotDate := time.Now().UTC()
	if asOf != nil {
		snapshotDate = *asOf
	}
	snapshot := domain.TrialBalanceSnapshot{
		AsOfDate:       truncateToDate(snapshotDate),
		SumDebitMinor:  sumDebit,
		SumCreditMinor: sumCredit,
		DeltaMinor:     sumDebit - sumCredit,
		Status:         domain.TrialBalanceOK,
		RanAt:          time.Now().UTC(),
	}
	if snapshot.DeltaMinor != 0 {
		snapshot.Status = domain.TrialBalanceMismatch
		logger.Error("Trial balance mismatch detected",
			slog.Int64("sum_debit_minor", sumDebit),
			slog.Int64("sum_credit_minor", sumCredit),
			slog.Int64("delta_minor", snapshot.DeltaMinor),
			slog.Time("as_of_date", snapshot.AsOfDate))
	}

	if err := s.trialBalanceRepo.SaveSnapshot(ctx, snapshot); err != nil {
		logger.Error("Failed to save trial balance snapshot", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save trial balance snapshot: %w", err)
	}

	logger.Info("Trial balance run completed",
		slog.String("status", string(snapshot.Status)),
		slog.Time("as_of_date", snapshot.AsOfDate))
	return &snapshot, nil
}

// GetSnapshot returns the stored snapshot for a date.
func (s *trialBalanceService) GetSnapshot(ctx context.Context, date time.Time) (*domain.TrialBalanceSnapshot, error) {
	snapshot, err := s.trialBalanceRepo.FindSnapshotByDate(ctx, truncateToDate(date))
	if err != nil {
		return nil, fmt.Errorf("failed to read trial balance snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: no trial balance snapshot for %s",
			apperrors.ErrNotFound, truncateToDate(date).Format("2006-01-02"))
	}
	return snapshot, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}
