package domain

// AccountCode identifies one of the fixed ledger buckets. The chart of
// accounts is not configurable: a single-currency loyalty program only needs
// these four.
type AccountCode string

const (
	// AccountCash is the global asset account holding operator cash/bank funds.
	AccountCash AccountCode = "CASH"
	// AccountCustomerFunds is the per-customer liability account (wallet balance).
	AccountCustomerFunds AccountCode = "CUSTOMER_FUNDS"
	// AccountRevenue is the global revenue account credited by charges.
	AccountRevenue AccountCode = "REVENUE"
	// AccountBonusExpense is the global expense account debited by bonuses.
	AccountBonusExpense AccountCode = "BONUS_EXPENSE"
)

// AccountClass defines the fundamental accounting type of an account.
type AccountClass string

const (
	Asset     AccountClass = "ASSET"
	Liability AccountClass = "LIABILITY"
	Revenue   AccountClass = "REVENUE"
	Expense   AccountClass = "EXPENSE"
)

// GlobalUserID marks balance rows not keyed by a customer.
const GlobalUserID = ""

// ClassOf returns the accounting class of a ledger account code.
// Returns false for codes outside the fixed chart.
func ClassOf(code AccountCode) (AccountClass, bool) {
	switch code {
	case AccountCash:
		return Asset, true
	case AccountCustomerFunds:
		return Liability, true
	case AccountRevenue:
		return Revenue, true
	case AccountBonusExpense:
		return Expense, true
	default:
		return "", false
	}
}

// IsUserScoped reports whether balances on this account are keyed per customer.
func IsUserScoped(code AccountCode) bool {
	return code == AccountCustomerFunds
}

// NormalSide returns the entry side that increases balances of this class:
// asset and expense accounts grow on debit, liability and revenue on credit.
func (c AccountClass) NormalSide() EntrySide {
	switch c {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}
