package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

func newBalanceRepo(t *testing.T) (*PgxBalanceRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgxBalanceRepository(NewBaseRepository(mock)), mock
}

func TestFindBalance(t *testing.T) {
	ctx := context.Background()
	repo, mock := newBalanceRepo(t)
	userID := uuid.NewString()
	now := time.Now().UTC()
	key := domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: userID}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT account_code, user_id, balance_minor, updated_at FROM account_balances`).
			WithArgs("CUSTOMER_FUNDS", userID).
			WillReturnRows(pgxmock.NewRows([]string{"account_code", "user_id", "balance_minor", "updated_at"}).
				AddRow("CUSTOMER_FUNDS", userID, int64(750), now))

		balance, err := repo.FindBalance(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, int64(750), balance.BalanceMinor)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("never touched returns nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT account_code, user_id, balance_minor, updated_at FROM account_balances`).
			WithArgs("CUSTOMER_FUNDS", userID).
			WillReturnRows(pgxmock.NewRows([]string{"account_code", "user_id", "balance_minor", "updated_at"}))

		balance, err := repo.FindBalance(ctx, key)
		assert.NoError(t, err)
		assert.Nil(t, balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRebuildBalances(t *testing.T) {
	ctx := context.Background()
	repo, mock := newBalanceRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM account_balances`).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectExec(`INSERT INTO account_balances`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 7))
	mock.ExpectCommit()

	rows, err := repo.RebuildBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
