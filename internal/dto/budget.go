package dto

import (
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget or goal.
type CreateBudgetRequest struct {
	Category  string            `json:"category" binding:"required"`
	Amount    decimal.Decimal   `json:"amount" binding:"required"`
	Period    string            `json:"period" binding:"required"`
	Type      domain.BudgetType `json:"type" binding:"required,oneof=INCOME EXPENSE GOAL"`
	StartDate time.Time         `json:"startDate" binding:"required"`
	EndDate   time.Time         `json:"endDate" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Category  *string          `json:"category"`
	Amount    *decimal.Decimal `json:"amount"`
	Period    *string          `json:"period"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
}

// BudgetResponse defines the data returned for a budget. SavedAmount is the
// derived sum of contributions feeding the budget, never a stored value.
type BudgetResponse struct {
	BudgetID    string            `json:"budgetID"`
	Category    string            `json:"category"`
	Amount      decimal.Decimal   `json:"amount"`
	Period      string            `json:"period"`
	Type        domain.BudgetType `json:"type"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	SavedAmount decimal.Decimal   `json:"savedAmount"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain.Budget plus its derived saved total to a DTO.
func ToBudgetResponse(b *domain.Budget, savedAmount decimal.Decimal) BudgetResponse {
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		Category:    b.Category,
		Amount:      b.Amount,
		Period:      b.Period,
		Type:        b.Type,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		SavedAmount: savedAmount,
		CreatedAt:   b.CreatedAt,
	}
}
