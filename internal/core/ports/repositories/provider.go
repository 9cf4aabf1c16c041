package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer. Assembled once at startup from the database pool.
type RepositoryProvider struct {
	Ledger       LedgerRepository
	Balance      BalanceRepository
	Idempotency  IdempotencyRepository
	TrialBalance TrialBalanceRepository
}
