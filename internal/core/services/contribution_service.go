package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
)

// contributionService moves money from a funding account toward a savings
// goal. The contribution row is the single source of truth for both sides of
// the movement: it depresses the funding account's projection and accrues
// toward the goal's derived saved total. No balance field is ever written.
type contributionService struct {
	contributionRepo portsrepo.ContributionRepositoryFacade
	budgetRepo       portsrepo.BudgetReader
	accountSvc       portssvc.AccountReaderSvc
}

// NewContributionService creates a new ContributionService.
func NewContributionService(contributionRepo portsrepo.ContributionRepositoryFacade, budgetRepo portsrepo.BudgetReader, accountSvc portssvc.AccountReaderSvc) portssvc.ContributionSvcFacade {
	return &contributionService{
		contributionRepo: contributionRepo,
		budgetRepo:       budgetRepo,
		accountSvc:       accountSvc,
	}
}

var _ portssvc.ContributionSvcFacade = (*contributionService)(nil)

// getOwnedBudget retrieves a budget and folds foreign ownership into NotFound.
func (s *contributionService) getOwnedBudget(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", budgetID, err)
	}
	if budget.UserID != userID {
		middleware.GetLoggerFromCtx(ctx).Warn("Budget owned by different user referenced", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("budget %s: %w", budgetID, apperrors.ErrNotFound)
	}
	return budget, nil
}

// CreateContribution validates the goal and funding account, then persists the
// contribution as one atomic unit.
func (s *contributionService) CreateContribution(ctx context.Context, req dto.CreateContributionRequest, userID string) (*domain.Contribution, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	budget, err := s.getOwnedBudget(ctx, req.BudgetID, userID)
	if err != nil {
		return nil, err
	}
	if budget.Type != domain.BudgetGoal {
		return nil, fmt.Errorf("%w: budget %s is not a savings goal", apperrors.ErrPrecondition, req.BudgetID)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID, userID)
	if err != nil {
		return nil, err
	}
	if account.IsCredit() {
		return nil, fmt.Errorf("%w: credit account %s cannot fund a contribution", apperrors.ErrPrecondition, req.AccountID)
	}

	now := time.Now().UTC()
	contribution := domain.Contribution{
		ContributionID: uuid.NewString(),
		UserID:         userID,
		BudgetID:       req.BudgetID,
		AccountID:      req.AccountID,
		Amount:         req.Amount,
		Date:           req.Date,
		Method:         req.Method,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contributionRepo.SaveContribution(ctx, contribution); err != nil {
		logger.Error("Failed to save contribution", slog.String("error", err.Error()), slog.String("contribution_id", contribution.ContributionID))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: saving contribution: %v", apperrors.ErrTransactionFailure, err)
	}

	logger.Info("Contribution created successfully",
		slog.String("contribution_id", contribution.ContributionID),
		slog.String("budget_id", contribution.BudgetID),
		slog.String("account_id", contribution.AccountID))
	return &contribution, nil
}

// DeleteContribution removes a contribution owned by the user. Removing the
// row restores exactly its amount to the funding account's projection and
// subtracts it from the goal's saved total, with no compensating writes.
func (s *contributionService) DeleteContribution(ctx context.Context, contributionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	contribution, err := s.contributionRepo.FindContributionByID(ctx, contributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find contribution by ID", slog.String("error", err.Error()), slog.String("contribution_id", contributionID))
		}
		return err
	}
	if contribution.UserID != userID {
		logger.Warn("Contribution found but owned by different user", slog.String("contribution_id", contributionID))
		return apperrors.ErrNotFound
	}

	if err := s.contributionRepo.DeleteContribution(ctx, contributionID); err != nil {
		logger.Error("Failed to delete contribution", slog.String("error", err.Error()), slog.String("contribution_id", contributionID))
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting contribution: %v", apperrors.ErrTransactionFailure, err)
	}

	logger.Info("Contribution deleted successfully", slog.String("contribution_id", contributionID))
	return nil
}

// ListContributionsByBudget retrieves the contributions feeding a budget owned by the user.
func (s *contributionService) ListContributionsByBudget(ctx context.Context, budgetID string, userID string) ([]domain.Contribution, error) {
	if _, err := s.getOwnedBudget(ctx, budgetID, userID); err != nil {
		return nil, err
	}

	contributions, err := s.contributionRepo.ListContributionsByBudget(ctx, budgetID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list contributions", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to list contributions for budget %s: %w", budgetID, err)
	}

	return contributions, nil
}
