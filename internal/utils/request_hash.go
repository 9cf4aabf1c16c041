package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// RequestHash computes the deterministic fingerprint stored against an
// idempotency key. A retried request must hash identically; the same key with
// a different hash signals client misuse rather than a network retry.
func RequestHash(operation string, fields ...string) string {
	payload := operation + "\x1f" + strings.Join(fields, "\x1f")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// AmountField renders an integer amount for hashing.
func AmountField(amountMinor int64) string {
	return fmt.Sprintf("%d", amountMinor)
}
