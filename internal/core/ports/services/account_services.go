package services

import (
	"context"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by the requesting user.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, all of which must be owned by the requesting user.
	GetAccountsByIDs(ctx context.Context, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves the user's accounts together with their projected balances.
	ListAccounts(ctx context.Context, userID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account for the user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details, including its baseline checkpoint.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account owned by the user.
	DeleteAccount(ctx context.Context, accountID string, userID string) error

	// SetDefaultAccount marks the account as the user's default, unsetting
	// all others in the same logical operation.
	SetDefaultAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error)
}

// AccountCalculatorSvc defines balance projection operations for account data
type AccountCalculatorSvc interface {
	// ProjectAccountBalance derives the account's live balance from its
	// baseline checkpoint plus transaction and contribution history.
	ProjectAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
