package services

import (
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The account service is first: every other service routes its account
	// lookups (and therefore ownership checks and projections) through it.
	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.ContributionRepo,
	)

	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, repos.CategoryRepo)
	container.Contribution = NewContributionService(repos.ContributionRepo, repos.BudgetRepo, container.Account)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.ContributionRepo)
	container.BillPayment = NewBillPaymentService(repos.TransactionRepo, container.Account)

	return container
}
