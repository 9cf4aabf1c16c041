package repositories

import (
	"context"
	"time"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// TrialBalanceRepository aggregates the entry log for reconciliation and
// stores the resulting snapshots. Reads run on a consistent MVCC snapshot and
// never block writers.
type TrialBalanceRepository interface {
	// SumEntries returns the total debit and credit amounts across all
	// entries, restricted to a single day when asOf is non-nil.
	SumEntries(ctx context.Context, asOf *time.Time) (sumDebit int64, sumCredit int64, err error)

	// SaveSnapshot upserts the snapshot for its as-of date; re-running a day
	// overwrites that day's record.
	SaveSnapshot(ctx context.Context, snapshot domain.TrialBalanceSnapshot) error

	FindSnapshotByDate(ctx context.Context, date time.Time) (*domain.TrialBalanceSnapshot, error)
}
