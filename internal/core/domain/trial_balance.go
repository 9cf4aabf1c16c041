package domain

import "time"

// TrialBalanceStatus is the outcome of a reconciliation run.
type TrialBalanceStatus string

const (
	TrialBalanceOK       TrialBalanceStatus = "OK"
	TrialBalanceMismatch TrialBalanceStatus = "MISMATCH"
)

// TrialBalanceSnapshot records one reconciliation run: the aggregate debit and
// credit sums over the ledger (or a single day) and their delta. A non-zero
// delta means a handler committed an unbalanced pair, which is a latent bug
// and not a retryable condition. Re-running a date overwrites that snapshot.
type TrialBalanceSnapshot struct {
	AsOfDate       time.Time          `json:"asOfDate"` // date precision; zero value = whole ledger run
	SumDebitMinor  int64              `json:"sumDebitMinor"`
	SumCreditMinor int64              `json:"sumCreditMinor"`
	DeltaMinor     int64              `json:"deltaMinor"`
	Status         TrialBalanceStatus `json:"status"`
	RanAt          time.Time          `json:"ranAt"`
}
