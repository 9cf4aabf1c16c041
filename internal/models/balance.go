package models

import "time"

// AccountBalance is the storage shape of one cached balance row.
type AccountBalance struct {
	AccountCode  string    `json:"accountCode"`
	UserID       string    `json:"userID"`
	BalanceMinor int64     `json:"balanceMinor"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
