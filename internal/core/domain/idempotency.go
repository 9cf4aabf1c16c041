package domain

import "time"

// IdempotencyRecord maps a client-supplied key to the hash of the request it
// first arrived with and the transaction that request produced. Stored in a
// durable side table with the same atomicity as the ledger writes it guards,
// so replays survive restarts and are visible to every instance.
type IdempotencyRecord struct {
	Key           string    `json:"key"`
	RequestHash   string    `json:"requestHash"`
	TransactionID string    `json:"transactionID"`
	FirstSeenAt   time.Time `json:"firstSeenAt"`
}
