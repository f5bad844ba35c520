package dto

import (
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContributionRequest defines the data needed to create a new contribution.
type CreateContributionRequest struct {
	BudgetID  string          `json:"budgetID" binding:"required,uuid"`
	AccountID string          `json:"accountID" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Method    string          `json:"method"`
}

// ContributionResponse defines the data returned for a contribution.
type ContributionResponse struct {
	ContributionID string          `json:"contributionID"`
	BudgetID       string          `json:"budgetID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Method         string          `json:"method"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListContributionsResponse wraps the list of contributions.
type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
}

// ToContributionResponse converts a domain.Contribution to ContributionResponse DTO
func ToContributionResponse(c *domain.Contribution) ContributionResponse {
	return ContributionResponse{
		ContributionID: c.ContributionID,
		BudgetID:       c.BudgetID,
		AccountID:      c.AccountID,
		Amount:         c.Amount,
		Date:           c.Date,
		Method:         c.Method,
		CreatedAt:      c.CreatedAt,
	}
}

// ToContributionResponses converts a slice of domain Contributions to DTOs
func ToContributionResponses(cs []domain.Contribution) []ContributionResponse {
	res := make([]ContributionResponse, len(cs))
	for i := range cs {
		res[i] = ToContributionResponse(&cs[i])
	}
	return res
}
