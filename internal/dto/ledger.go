package dto

import (
	"time"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
)

// TopupRequest funds a customer wallet from the cash account.
type TopupRequest struct {
	UserID      string `json:"userID" binding:"required"`
	AmountMinor int64  `json:"amountMinor" binding:"required,gt=0"`
	Note        string `json:"note"`
}

// ChargeRequest spends from a customer wallet into revenue.
type ChargeRequest struct {
	UserID      string `json:"userID" binding:"required"`
	AmountMinor int64  `json:"amountMinor" binding:"required,gt=0"`
	Note        string `json:"note"`
}

// BonusRequest grants promotional funds to a customer wallet.
type BonusRequest struct {
	UserID      string `json:"userID" binding:"required"`
	AmountMinor int64  `json:"amountMinor" binding:"required,gt=0"`
	Reason      string `json:"reason" binding:"required"`
}

// TransactionCreatedResponse is returned by the money-moving operations.
type TransactionCreatedResponse struct {
	TxID string `json:"txID"`
}

// ReversalCreatedResponse is returned by the reversal operation.
type ReversalCreatedResponse struct {
	ReversalTxID string `json:"reversalTxID"`
}

// EntryResponse is one side of a transaction's balanced pair.
type EntryResponse struct {
	EntryID         string `json:"entryID"`
	AccountCode     string `json:"accountCode"`
	UserID          string `json:"userID,omitempty"`
	Side            string `json:"side"`
	AmountMinor     int64  `json:"amountMinor"`
	AmountFormatted string `json:"amountFormatted"`
}

// TransactionResponse is one ledger event with its entry pair.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	Type           string          `json:"type"`
	Note           string          `json:"note,omitempty"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	ReversalOf     *string         `json:"reversalOf,omitempty"`
	ActorID        string          `json:"actorID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Entries        []EntryResponse `json:"entries,omitempty"`
}

// ListTransactionsParams holds query parameters for the transaction listing.
type ListTransactionsParams struct {
	UserID    *string
	Limit     int
	NextToken *string
}

// ListTransactionsResponse is a newest-first page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
	HasMore      bool                  `json:"hasMore"`
}

// ToTransactionResponse converts a domain transaction (and optional entries)
// into its response shape.
func ToTransactionResponse(txn *domain.LedgerTransaction, entries []domain.LedgerEntry, format func(int64) string) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:  txn.TransactionID,
		Type:           string(txn.Type),
		Note:           txn.Note,
		IdempotencyKey: txn.IdempotencyKey,
		ReversalOf:     txn.ReversalOf,
		ActorID:        txn.ActorID,
		CreatedAt:      txn.CreatedAt,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			EntryID:         e.EntryID,
			AccountCode:     string(e.AccountCode),
			UserID:          e.UserID,
			Side:            string(e.Side),
			AmountMinor:     e.AmountMinor,
			AmountFormatted: format(e.AmountMinor),
		})
	}
	return resp
}
