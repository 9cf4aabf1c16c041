package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	"github.com/brewpoints/cafe_ledger_app/internal/models"
	"github.com/brewpoints/cafe_ledger_app/internal/utils/mapping"
)

type PgxTrialBalanceRepository struct {
	*BaseRepository
}

// NewPgxTrialBalanceRepository creates the reconciliation repository.
func NewPgxTrialBalanceRepository(base *BaseRepository) *PgxTrialBalanceRepository {
	return &PgxTrialBalanceRepository{BaseRepository: base}
}

var _ portsrepo.TrialBalanceRepository = (*PgxTrialBalanceRepository)(nil)

// SumEntries totals both sides of the entry log, restricted to one UTC day
// when asOf is non-nil. Runs on an MVCC snapshot and takes no locks.
func (r *PgxTrialBalanceRepository) SumEntries(ctx context.Context, asOf *time.Time) (int64, int64, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN side = 'DEBIT' THEN amount_minor ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN side = 'CREDIT' THEN amount_minor ELSE 0 END), 0)
FROM ledger_entries`
	args := make([]any, 0, 2)
	if asOf != nil {
		dayStart := time.Date(asOf.UTC().Year(), asOf.UTC().Month(), asOf.UTC().Day(), 0, 0, 0, 0, time.UTC)
		query += " WHERE created_at >= $1 AND created_at < $2"
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
	}

	var sumDebit, sumCredit int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sumDebit, &sumCredit); err != nil {
		return 0, 0, fmt.Errorf("failed to sum entries: %w", err)
	}
	return sumDebit, sumCredit, nil
}

// SaveSnapshot upserts the snapshot for its as-of date.
func (r *PgxTrialBalanceRepository) SaveSnapshot(ctx context.Context, snapshot domain.TrialBalanceSnapshot) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO trial_balance_snapshots (as_of_date, sum_debit_minor, sum_credit_minor, delta_minor, status, ran_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (as_of_date) DO UPDATE SET
    sum_debit_minor = EXCLUDED.sum_debit_minor,
    sum_credit_minor = EXCLUDED.sum_credit_minor,
    delta_minor = EXCLUDED.delta_minor,
    status = EXCLUDED.status,
    ran_at = EXCLUDED.ran_at`,
		snapshot.AsOfDate, snapshot.SumDebitMinor, snapshot.SumCreditMinor,
		snapshot.DeltaMinor, string(snapshot.Status), snapshot.RanAt)
	if err != nil {
		return fmt.Errorf("failed to save trial balance snapshot: %w", err)
	}
	return nil
}

// FindSnapshotByDate returns the stored snapshot for a date, or nil.
func (r *PgxTrialBalanceRepository) FindSnapshotByDate(ctx context.Context, date time.Time) (*domain.TrialBalanceSnapshot, error) {
	var m models.TrialBalanceSnapshot
	err := r.pool.QueryRow(ctx,
		"SELECT as_of_date, sum_debit_minor, sum_credit_minor, delta_minor, status, ran_at FROM trial_balance_snapshots WHERE as_of_date = $1",
		date).
		Scan(&m.AsOfDate, &m.SumDebitMinor, &m.SumCreditMinor, &m.DeltaMinor, &m.Status, &m.RanAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find trial balance snapshot: %w", err)
	}
	snapshot := mapping.ToDomainTrialBalanceSnapshot(m)
	return &snapshot, nil
}
