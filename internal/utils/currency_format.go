package utils

import "github.com/shopspring/decimal"

// minorUnitPrecision is fixed for the loyalty program's single currency
// (two decimal places, e.g. cents).
const minorUnitPrecision = 2

// FormatMinorUnits renders an integer minor-unit amount as a display string.
// Example: 123450 returns "1234.50". Ledger arithmetic never uses this; it
// exists for messages and responses only.
func FormatMinorUnits(amountMinor int64) string {
	return decimal.New(amountMinor, -minorUnitPrecision).StringFixed(minorUnitPrecision)
}
