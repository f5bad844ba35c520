package services

import (
	"context"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade defines operations for budgets and savings goals.
type BudgetSvcFacade interface {
	// CreateBudget persists a new budget or goal for the user.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// GetBudgetByID retrieves a budget owned by the user.
	GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)

	// GetSavedAmount derives a goal's saved total from its contributions.
	GetSavedAmount(ctx context.Context, budgetID string, userID string) (decimal.Decimal, error)

	// ListBudgets retrieves the user's budgets with derived saved totals.
	ListBudgets(ctx context.Context, userID string) (*dto.ListBudgetsResponse, error)

	// UpdateBudget updates an existing budget owned by the user.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeleteBudget removes a budget owned by the user.
	DeleteBudget(ctx context.Context, budgetID string, userID string) error
}
