package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

func newTrialBalanceRepo(t *testing.T) (*PgxTrialBalanceRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgxTrialBalanceRepository(NewBaseRepository(mock)), mock
}

func TestSumEntries_WholeLedger(t *testing.T) {
	ctx := context.Background()
	repo, mock := newTrialBalanceRepo(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN side = 'DEBIT'`).
		WillReturnRows(pgxmock.NewRows([]string{"sum_debit", "sum_credit"}).AddRow(int64(12300), int64(12300)))

	sumDebit, sumCredit, err := repo.SumEntries(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12300), sumDebit)
	assert.Equal(t, int64(12300), sumCredit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumEntries_SingleDayWindow(t *testing.T) {
	ctx := context.Background()
	repo, mock := newTrialBalanceRepo(t)
	asOf := time.Date(2025, 6, 15, 17, 45, 0, 0, time.UTC)
	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM ledger_entries WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(dayStart, dayStart.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"sum_debit", "sum_credit"}).AddRow(int64(500), int64(400)))

	sumDebit, sumCredit, err := repo.SumEntries(ctx, &asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(500), sumDebit)
	assert.Equal(t, int64(400), sumCredit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSnapshot_Upsert(t *testing.T) {
	ctx := context.Background()
	repo, mock := newTrialBalanceRepo(t)
	snapshot := domain.TrialBalanceSnapshot{
		AsOfDate:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		SumDebitMinor:  500,
		SumCreditMinor: 400,
		DeltaMinor:     100,
		Status:         domain.TrialBalanceMismatch,
		RanAt:          time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO trial_balance_snapshots .* ON CONFLICT \(as_of_date\) DO UPDATE`).
		WithArgs(snapshot.AsOfDate, snapshot.SumDebitMinor, snapshot.SumCreditMinor, snapshot.DeltaMinor, "MISMATCH", snapshot.RanAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SaveSnapshot(ctx, snapshot)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSnapshotByDate(t *testing.T) {
	ctx := context.Background()
	repo, mock := newTrialBalanceRepo(t)
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT as_of_date, sum_debit_minor, sum_credit_minor, delta_minor, status, ran_at FROM trial_balance_snapshots`).
			WithArgs(date).
			WillReturnRows(pgxmock.NewRows([]string{"as_of_date", "sum_debit_minor", "sum_credit_minor", "delta_minor", "status", "ran_at"}).
				AddRow(date, int64(500), int64(500), int64(0), "OK", time.Now().UTC()))

		snapshot, err := repo.FindSnapshotByDate(ctx, date)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, domain.TrialBalanceOK, snapshot.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT as_of_date, sum_debit_minor, sum_credit_minor, delta_minor, status, ran_at FROM trial_balance_snapshots`).
			WithArgs(date).
			WillReturnRows(pgxmock.NewRows([]string{"as_of_date", "sum_debit_minor", "sum_credit_minor", "delta_minor", "status", "ran_at"}))

		snapshot, err := repo.FindSnapshotByDate(ctx, date)
		assert.NoError(t, err)
		assert.Nil(t, snapshot)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
