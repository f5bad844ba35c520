package dto

import (
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT WALLET OTHER"`
	Balance         decimal.Decimal    `json:"balance"`         // Baseline checkpoint, defaults to zero
	CreditLimit     *decimal.Decimal   `json:"creditLimit"`     // Optional, credit accounts only
	LinkedAccountID *string            `json:"linkedAccountID"` // Optional, credit card -> funding account
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name            *string          `json:"name"`
	Balance         *decimal.Decimal `json:"balance"` // New baseline checkpoint
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	LinkedAccountID *string          `json:"linkedAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	Balance         decimal.Decimal    `json:"balance"` // Baseline checkpoint
	CreditLimit     *decimal.Decimal   `json:"creditLimit,omitempty"`
	IsDefault       bool               `json:"isDefault"`
	LinkedAccountID string             `json:"linkedAccountID,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// AccountBalanceResponse carries the projected (live) balance of an account
// alongside the presentation-adjusted display value.
type AccountBalanceResponse struct {
	AccountID        string          `json:"accountID"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
	DisplayBalance   decimal.Decimal `json:"displayBalance"`
	OwedAmount       decimal.Decimal `json:"owedAmount"` // Credit accounts only, zero otherwise
}

// AccountWithBalanceResponse bundles an account with its projection.
type AccountWithBalanceResponse struct {
	AccountResponse
	AccountBalanceResponse
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts with their projections.
type ListAccountsResponse struct {
	Accounts []AccountWithBalanceResponse `json:"accounts"`
}

// ToAccountBalanceResponse packages a projection with its presentation values.
func ToAccountBalanceResponse(acc *domain.Account, projected decimal.Decimal) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:        acc.AccountID,
		ProjectedBalance: projected,
		DisplayBalance:   accounting.DisplayBalance(*acc, projected),
		OwedAmount:       accounting.OwedAmount(*acc, projected),
	}
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Balance:         acc.Balance,
		CreditLimit:     acc.CreditLimit,
		IsDefault:       acc.IsDefault,
		LinkedAccountID: acc.LinkedAccountID,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}
