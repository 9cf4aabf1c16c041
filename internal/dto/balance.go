package dto

import "time"

// BalanceResponse is the current wallet balance for one customer.
type BalanceResponse struct {
	UserID           string    `json:"userID"`
	BalanceMinor     int64     `json:"balanceMinor"`
	BalanceFormatted string    `json:"balanceFormatted"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RebuildBalancesResponse reports the outcome of a balance rebuild.
type RebuildBalancesResponse struct {
	RowsRebuilt int64 `json:"rowsRebuilt"`
}
