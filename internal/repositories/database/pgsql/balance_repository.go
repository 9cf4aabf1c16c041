package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
	"github.com/brewpoints/cafe_ledger_app/internal/models"
	"github.com/brewpoints/cafe_ledger_app/internal/utils/mapping"
)

// rebuildBalancesSQL recomputes natural-sign balances from the entry log.
// Debit-normal accounts sum debit minus credit; credit-normal accounts flip
// the sign.
const rebuildBalancesSQL = `
INSERT INTO account_balances (account_code, user_id, balance_minor, updated_at)
SELECT account_code,
       user_id,
       SUM(CASE WHEN side = 'DEBIT' THEN amount_minor ELSE -amount_minor END)
         * CASE WHEN account_code IN ('CASH', 'BONUS_EXPENSE') THEN 1 ELSE -1 END,
       $1
FROM ledger_entries
GROUP BY account_code, user_id`

type PgxBalanceRepository struct {
	*BaseRepository
}

// NewPgxBalanceRepository creates the balance read repository.
func NewPgxBalanceRepository(base *BaseRepository) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: base}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// FindBalance returns the cached balance row, or nil when no entry has ever
// touched the account.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error) {
	var m models.AccountBalance
	err := r.pool.QueryRow(ctx,
		"SELECT account_code, user_id, balance_minor, updated_at FROM account_balances WHERE account_code = $1 AND user_id = $2",
		string(key.AccountCode), key.UserID).
		Scan(&m.AccountCode, &m.UserID, &m.BalanceMinor, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find balance for %s/%s: %w", key.AccountCode, key.UserID, err)
	}
	balance := mapping.ToDomainBalance(m)
	return &balance, nil
}

// RebuildBalances drops every cached row and re-aggregates from the entry log
// inside one transaction. The cache is derived state, so this is always safe
// to run; it exists for dev tooling and corruption drills.
func (r *PgxBalanceRepository) RebuildBalances(ctx context.Context) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if _, err := tx.Exec(ctx, "DELETE FROM account_balances"); err != nil {
		return 0, fmt.Errorf("failed to clear balances: %w", err)
	}

	tag, err := tx.Exec(ctx, rebuildBalancesSQL, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to rebuild balances: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tag.RowsAffected(), nil
}
