package dto

import "time"

// RunTrialBalanceRequest optionally restricts the reconciliation to one day.
// AsOfDate uses the YYYY-MM-DD layout; empty means the whole ledger.
type RunTrialBalanceRequest struct {
	AsOfDate string `json:"asOfDate"`
}

// TrialBalanceResponse reports one reconciliation run.
type TrialBalanceResponse struct {
	AsOfDate       string    `json:"asOfDate"`
	Status         string    `json:"status"`
	SumDebitMinor  int64     `json:"sumDebitMinor"`
	SumCreditMinor int64     `json:"sumCreditMinor"`
	DeltaMinor     int64     `json:"deltaMinor"`
	RanAt          time.Time `json:"ranAt"`
}
