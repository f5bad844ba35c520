package services

import (
	"context"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/dto"
)

// ContributionSvcFacade defines operations for moving money toward savings goals.
type ContributionSvcFacade interface {
	// CreateContribution validates budget and funding-account ownership and
	// persists the contribution as one atomic unit.
	CreateContribution(ctx context.Context, req dto.CreateContributionRequest, userID string) (*domain.Contribution, error)

	// DeleteContribution removes a contribution owned by the user; the
	// funding account's projected balance rises by exactly the
	// contribution's amount.
	DeleteContribution(ctx context.Context, contributionID string, userID string) error

	// ListContributionsByBudget retrieves the contributions feeding a budget owned by the user.
	ListContributionsByBudget(ctx context.Context, budgetID string, userID string) ([]domain.Contribution, error)
}
