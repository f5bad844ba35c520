package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories together. The
// transaction and contribution repositories share the account repository so
// their atomic units can lock account rows.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	contributionRepo := newPgxContributionRepository(dbPool, accountRepo)
	budgetRepo := newPgxBudgetRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		ContributionRepo: contributionRepo,
		BudgetRepo:       budgetRepo,
		CategoryRepo:     categoryRepo,
	}
}
