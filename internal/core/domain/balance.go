package domain

import "time"

// BalanceKey addresses one cached balance row.
type BalanceKey struct {
	AccountCode AccountCode
	UserID      string // GlobalUserID for the three global accounts
}

// AccountBalance is the materialized net of all committed entries on one
// account, in the account class's natural sign. It is derived state: it can
// always be rebuilt by replaying the entry log, and it is only ever mutated
// inside the same atomic unit that inserts the entries.
type AccountBalance struct {
	AccountCode  AccountCode `json:"accountCode"`
	UserID       string      `json:"userID"`
	BalanceMinor int64       `json:"balanceMinor"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
