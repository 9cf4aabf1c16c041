package models

import "time"

// IdempotencyRecord is the storage shape of the idempotency side table.
type IdempotencyRecord struct {
	Key           string    `json:"key"`
	RequestHash   string    `json:"requestHash"`
	TransactionID string    `json:"transactionID"`
	FirstSeenAt   time.Time `json:"firstSeenAt"`
}
