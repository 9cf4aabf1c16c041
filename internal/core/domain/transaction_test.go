package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

func makeEntry(account domain.AccountCode, userID string, side domain.EntrySide, amount int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountCode: account,
		UserID:      userID,
		Side:        side,
		AmountMinor: amount,
	}
}

func TestValidateEntryPair_Valid(t *testing.T) {
	entries := []domain.LedgerEntry{
		makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 500),
		makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 500),
	}
	assert.NoError(t, domain.ValidateEntryPair(entries))
}

func TestValidateEntryPair_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		entries []domain.LedgerEntry
	}{
		{
			name: "single entry",
			entries: []domain.LedgerEntry{
				makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 500),
			},
		},
		{
			name: "two debits",
			entries: []domain.LedgerEntry{
				makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 500),
				makeEntry(domain.AccountCustomerFunds, "user-1", domain.Debit, 500),
			},
		},
		{
			name: "unequal amounts",
			entries: []domain.LedgerEntry{
				makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 500),
				makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 400),
			},
		},
		{
			name: "zero amount",
			entries: []domain.LedgerEntry{
				makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 0),
				makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 0),
			},
		},
		{
			name: "negative amount",
			entries: []domain.LedgerEntry{
				makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, -100),
				makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, -100),
			},
		},
		{
			name: "unknown account",
			entries: []domain.LedgerEntry{
				makeEntry("PETTY_CASH", domain.GlobalUserID, domain.Debit, 500),
				makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 500),
			},
		},
		{
			name: "invalid side",
			entries: []domain.LedgerEntry{
				makeEntry(domain.AccountCash, domain.GlobalUserID, "BOTH", 500),
				makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 500),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateEntryPair(tc.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrLedgerInvariantBroken)
		})
	}
}

func TestSignedAmount_NaturalSign(t *testing.T) {
	// Debit-normal accounts grow on debit.
	cashDebit := makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 500)
	got, err := cashDebit.SignedAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)

	cashCredit := makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Credit, 500)
	got, err = cashCredit.SignedAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(-500), got)

	// Credit-normal accounts grow on credit.
	fundsCredit := makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 500)
	got, err = fundsCredit.SignedAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)

	fundsDebit := makeEntry(domain.AccountCustomerFunds, "user-1", domain.Debit, 500)
	got, err = fundsDebit.SignedAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(-500), got)
}

func TestSignedAmount_UnknownAccount(t *testing.T) {
	entry := makeEntry("GIFT_CARDS", domain.GlobalUserID, domain.Debit, 500)
	_, err := entry.SignedAmount()
	assert.ErrorIs(t, err, apperrors.ErrLedgerInvariantBroken)
}

func TestBalanceDeltas_Topup(t *testing.T) {
	entries := []domain.LedgerEntry{
		makeEntry(domain.AccountCash, domain.GlobalUserID, domain.Debit, 500),
		makeEntry(domain.AccountCustomerFunds, "user-1", domain.Credit, 500),
	}
	deltas, err := domain.BalanceDeltas(entries)
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, int64(500), deltas[domain.BalanceKey{AccountCode: domain.AccountCash, UserID: domain.GlobalUserID}])
	assert.Equal(t, int64(500), deltas[domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: "user-1"}])
}

func TestBalanceDeltas_Charge(t *testing.T) {
	entries := []domain.LedgerEntry{
		makeEntry(domain.AccountCustomerFunds, "user-1", domain.Debit, 300),
		makeEntry(domain.AccountRevenue, domain.GlobalUserID, domain.Credit, 300),
	}
	deltas, err := domain.BalanceDeltas(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(-300), deltas[domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: "user-1"}])
	assert.Equal(t, int64(300), deltas[domain.BalanceKey{AccountCode: domain.AccountRevenue, UserID: domain.GlobalUserID}])
}

func TestClassOf(t *testing.T) {
	class, ok := domain.ClassOf(domain.AccountBonusExpense)
	require.True(t, ok)
	assert.Equal(t, domain.Expense, class)
	assert.Equal(t, domain.Debit, class.NormalSide())

	_, ok = domain.ClassOf("LOYALTY_POINTS")
	assert.False(t, ok)
}
