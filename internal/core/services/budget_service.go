package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/finly-app/finly_backend/internal/utils/accounting"
)

// budgetService manages budgets and savings goals. A goal's saved amount is
// never stored; it is derived from the contribution rows on every read.
type budgetService struct {
	budgetRepo       portsrepo.BudgetRepositoryFacade
	contributionRepo portsrepo.ContributionReader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, contributionRepo portsrepo.ContributionReader) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:       budgetRepo,
		contributionRepo: contributionRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget persists a new budget or goal for the user.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:  uuid.NewString(),
		UserID:    userID,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    req.Period,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	logger.Info("Budget created successfully", slog.String("budget_id", budget.BudgetID), slog.String("type", string(budget.Type)))
	return &budget, nil
}

// GetBudgetByID retrieves a budget owned by the user.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find budget by ID", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return nil, err
	}

	if budget.UserID != userID {
		middleware.GetLoggerFromCtx(ctx).Warn("Budget found but owned by different user", slog.String("budget_id", budgetID))
		return nil, apperrors.ErrNotFound
	}

	return budget, nil
}

// GetSavedAmount derives a goal's saved total by summing its contributions.
func (s *budgetService) GetSavedAmount(ctx context.Context, budgetID string, userID string) (decimal.Decimal, error) {
	if _, err := s.GetBudgetByID(ctx, budgetID, userID); err != nil {
		return decimal.Zero, err
	}

	contributions, err := s.contributionRepo.ListContributionsByBudget(ctx, budgetID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list contributions for saved total", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return decimal.Zero, fmt.Errorf("failed to derive saved amount for budget %s: %w", budgetID, err)
	}

	return accounting.SumContributions(budgetID, contributions), nil
}

// ListBudgets retrieves the user's budgets with derived saved totals.
func (s *budgetService) ListBudgets(ctx context.Context, userID string) (*dto.ListBudgetsResponse, error) {
	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list budgets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	responses := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		saved := decimal.Zero
		if budgets[i].Type == domain.BudgetGoal {
			contributions, err := s.contributionRepo.ListContributionsByBudget(ctx, budgets[i].BudgetID)
			if err != nil {
				return nil, fmt.Errorf("failed to derive saved amount for budget %s: %w", budgets[i].BudgetID, err)
			}
			saved = accounting.SumContributions(budgets[i].BudgetID, contributions)
		}
		responses = append(responses, dto.ToBudgetResponse(&budgets[i], saved))
	}

	return &dto.ListBudgetsResponse{Budgets: responses}, nil
}

// UpdateBudget updates an existing budget owned by the user. The budget type
// is immutable after creation; contributions referencing a goal rely on it.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.GetBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Category != nil {
		budget.Category = *req.Category
		updated = true
	}
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		budget.Amount = *req.Amount
		updated = true
	}
	if req.Period != nil {
		budget.Period = *req.Period
		updated = true
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
		updated = true
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
		updated = true
	}
	if budget.EndDate.Before(budget.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}

	if !updated {
		return budget, nil
	}

	budget.LastUpdatedAt = time.Now().UTC()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	logger.Info("Budget updated successfully", slog.String("budget_id", budgetID))
	return budget, nil
}

// DeleteBudget removes a budget owned by the user. Goals with recorded
// contributions cannot be deleted; the contribution history is the source of
// both the goal's saved total and the funding accounts' projections.
func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.GetBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return err
	}

	if budget.Type == domain.BudgetGoal {
		contributions, err := s.contributionRepo.ListContributionsByBudget(ctx, budgetID)
		if err != nil {
			return fmt.Errorf("failed to check contributions for budget %s: %w", budgetID, err)
		}
		if len(contributions) > 0 {
			return fmt.Errorf("%w: goal %s has recorded contributions", apperrors.ErrPrecondition, budgetID)
		}
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return err
	}

	logger.Info("Budget deleted successfully", slog.String("budget_id", budgetID))
	return nil
}
