package models

import "time"

// TransactionType mirrors domain.TransactionType for storage.
type TransactionType string

const (
	Topup    TransactionType = "TOPUP"
	Charge   TransactionType = "CHARGE"
	Bonus    TransactionType = "BONUS"
	Reversal TransactionType = "REVERSAL"
)

// EntrySide mirrors domain.EntrySide for storage.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// LedgerTransaction is the storage shape of one ledger event. Rows are
// insert-only; there is no update path anywhere in the repository layer.
type LedgerTransaction struct {
	TransactionID  string          `json:"transactionID"`
	Type           TransactionType `json:"type"`
	Note           string          `json:"note"`
	IdempotencyKey *string         `json:"idempotencyKey"`
	ReversalOf     *string         `json:"reversalOf"`
	ActorID        string          `json:"actorID"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LedgerEntry is the storage shape of one side of a transaction's pair.
// Amounts are minor currency units (integer).
type LedgerEntry struct {
	EntryID       string    `json:"entryID"`
	TransactionID string    `json:"transactionID"`
	AccountCode   string    `json:"accountCode"`
	UserID        string    `json:"userID"` // '' for global accounts
	Side          EntrySide `json:"side"`
	AmountMinor   int64     `json:"amountMinor"`
	CreatedAt     time.Time `json:"createdAt"`
}
