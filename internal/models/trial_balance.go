package models

import "time"

// TrialBalanceSnapshot is the storage shape of one reconciliation run.
type TrialBalanceSnapshot struct {
	AsOfDate       time.Time `json:"asOfDate"`
	SumDebitMinor  int64     `json:"sumDebitMinor"`
	SumCreditMinor int64     `json:"sumCreditMinor"`
	DeltaMinor     int64     `json:"deltaMinor"`
	Status         string    `json:"status"`
	RanAt          time.Time `json:"ranAt"`
}
