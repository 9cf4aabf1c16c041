package domain

import (
	"fmt"
	"time"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
)

// EntrySide indicates whether a ledger entry is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// TransactionType classifies the logical event a ledger transaction records.
type TransactionType string

const (
	Topup    TransactionType = "TOPUP"
	Charge   TransactionType = "CHARGE"
	Bonus    TransactionType = "BONUS"
	Reversal TransactionType = "REVERSAL"
)

// LedgerTransaction is one balance-affecting event. Immutable once created;
// the log is append-only and rows are never updated or deleted.
type LedgerTransaction struct {
	TransactionID  string          `json:"transactionID"`
	Type           TransactionType `json:"type"`
	Note           string          `json:"note"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"` // client-supplied origin reference
	ReversalOf     *string         `json:"reversalOf,omitempty"`     // at most one reversal per original
	ActorID        string          `json:"actorID"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LedgerEntry is one side of a transaction's balanced pair. Amounts are
// positive integers in minor currency units; no floating point anywhere.
type LedgerEntry struct {
	EntryID       string      `json:"entryID"`
	TransactionID string      `json:"transactionID"`
	AccountCode   AccountCode `json:"accountCode"`
	UserID        string      `json:"userID"` // GlobalUserID for non-customer accounts
	Side          EntrySide   `json:"side"`
	AmountMinor   int64       `json:"amountMinor"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// SignedAmount converts the entry into a delta against the account's
// natural-sign balance: entries on the account class's normal side increase
// the balance, entries on the opposite side decrease it.
func (e LedgerEntry) SignedAmount() (int64, error) {
	class, ok := ClassOf(e.AccountCode)
	if !ok {
		return 0, fmt.Errorf("%w: unknown account code %q on entry %s",
			apperrors.ErrLedgerInvariantBroken, e.AccountCode, e.EntryID)
	}
	if e.Side == class.NormalSide() {
		return e.AmountMinor, nil
	}
	return -e.AmountMinor, nil
}

// ValidateEntryPair enforces the core double-entry invariant on a
// transaction's entries: exactly two, one debit and one credit, equal
// positive amounts, both on known accounts.
func ValidateEntryPair(entries []LedgerEntry) error {
	if len(entries) != 2 {
		return fmt.Errorf("%w: transaction must have exactly two entries, got %d",
			apperrors.ErrLedgerInvariantBroken, len(entries))
	}

	var debit, credit *LedgerEntry
	for i := range entries {
		e := &entries[i]
		if e.AmountMinor <= 0 {
			return fmt.Errorf("%w: entry %s amount must be positive, got %d",
				apperrors.ErrLedgerInvariantBroken, e.EntryID, e.AmountMinor)
		}
		if _, ok := ClassOf(e.AccountCode); !ok {
			return fmt.Errorf("%w: entry %s references unknown account %q",
				apperrors.ErrLedgerInvariantBroken, e.EntryID, e.AccountCode)
		}
		switch e.Side {
		case Debit:
			debit = e
		case Credit:
			credit = e
		default:
			return fmt.Errorf("%w: entry %s has invalid side %q",
				apperrors.ErrLedgerInvariantBroken, e.EntryID, e.Side)
		}
	}

	if debit == nil || credit == nil {
		return fmt.Errorf("%w: transaction needs one debit and one credit entry",
			apperrors.ErrLedgerInvariantBroken)
	}
	if debit.AmountMinor != credit.AmountMinor {
		return fmt.Errorf("%w: debit %d does not equal credit %d",
			apperrors.ErrLedgerInvariantBroken, debit.AmountMinor, credit.AmountMinor)
	}
	return nil
}

// BalanceDeltas aggregates a transaction's entries into net signed changes per
// (account code, user) balance row.
func BalanceDeltas(entries []LedgerEntry) (map[BalanceKey]int64, error) {
	deltas := make(map[BalanceKey]int64, len(entries))
	for _, e := range entries {
		signed, err := e.SignedAmount()
		if err != nil {
			return nil, err
		}
		key := BalanceKey{AccountCode: e.AccountCode, UserID: e.UserID}
		deltas[key] += signed
	}
	return deltas, nil
}
