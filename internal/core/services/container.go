package services

import (
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service facade against the repository
// provider. Called once at startup.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:       NewLedgerService(repos.Ledger, repos.Balance, repos.Idempotency),
		Balance:      NewBalanceService(repos.Balance),
		TrialBalance: NewTrialBalanceService(repos.TrialBalance),
	}
}
