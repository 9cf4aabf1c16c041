package pgsql

import (
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider assembles the pgsql-backed repository set around one
// shared pool.
func NewRepositoryProvider(pool PGXPool) *portsrepo.RepositoryProvider {
	base := NewBaseRepository(pool)
	return &portsrepo.RepositoryProvider{
		Ledger:       NewPgxLedgerRepository(base),
		Balance:      NewPgxBalanceRepository(base),
		Idempotency:  NewPgxIdempotencyRepository(base),
		TrialBalance: NewPgxTrialBalanceRepository(base),
	}
}
