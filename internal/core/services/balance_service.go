package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
)

type balanceService struct {
	balanceRepo portsrepo.BalanceRepository
}

// NewBalanceService creates the balance read service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetCustomerBalance returns the customer's liability balance. A customer the
// ledger has never seen holds zero, which is an answer rather than an error.
func (s *balanceService) GetCustomerBalance(ctx context.Context, userID string) (*domain.AccountBalance, error) {
	key := domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: userID}
	balance, err := s.balanceRepo.FindBalance(ctx, key)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to read customer balance",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read customer balance: %w", err)
	}
	if balance == nil {
		return &domain.AccountBalance{
			AccountCode:  domain.AccountCustomerFunds,
			UserID:       userID,
			BalanceMinor: 0,
			UpdatedAt:    time.Now().UTC(),
		}, nil
	}
	return balance, nil
}

// RebuildBalances recomputes every cached balance row from the entry log.
func (s *balanceService) RebuildBalances(ctx context.Context) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.balanceRepo.RebuildBalances(ctx)
	if err != nil {
		logger.Error("Failed to rebuild balances", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to rebuild balances: %w", err)
	}

	logger.Info("Balances rebuilt from entry log", slog.Int64("rows", rows))
	return rows, nil
}
