package repositories

import (
	"context"

	"github.com/finly-app/finly_backend/internal/core/domain"
)

// ContributionReader defines read operations for contribution data
type ContributionReader interface {
	// FindContributionByID retrieves a specific contribution by its unique identifier.
	FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error)

	// ListContributionsByBudget retrieves all contributions feeding one budget.
	ListContributionsByBudget(ctx context.Context, budgetID string) ([]domain.Contribution, error)

	// ListContributionsByAccount retrieves all contributions funded by one account.
	ListContributionsByAccount(ctx context.Context, accountID string) ([]domain.Contribution, error)
}

// ContributionWriter defines write operations for contribution data
type ContributionWriter interface {
	// SaveContribution persists a new contribution. The funding account row
	// is locked for the duration of the write, so the operation fails cleanly
	// if the account is concurrently deleted and concurrent contributions to
	// the same account serialize.
	SaveContribution(ctx context.Context, contribution domain.Contribution) error

	// DeleteContribution removes a contribution under the same account lock.
	DeleteContribution(ctx context.Context, contributionID string) error
}

// ContributionRepositoryFacade combines all contribution-related repository interfaces
type ContributionRepositoryFacade interface {
	ContributionReader
	ContributionWriter
}
