package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/finly-app/finly_backend/internal/utils/accounting"
)

var (
	ErrCreditLimitOnNonCredit = errors.New("credit limit is only valid for credit accounts")
	ErrLinkedAccountInvalid   = errors.New("linked account must be an existing non-credit account")
)

// accountService provides account operations, including the balance
// projection every financial decision reads instead of the stored baseline.
type accountService struct {
	accountRepo      portsrepo.AccountRepositoryFacade
	transactionRepo  portsrepo.TransactionReader
	contributionRepo portsrepo.ContributionReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionReader, contributionRepo portsrepo.ContributionReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		contributionRepo: contributionRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account for the user.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Balance.Equal(req.Balance.Round(2)) {
		return nil, fmt.Errorf("%w: baseline balance must have at most two fractional digits", apperrors.ErrValidation)
	}

	if req.CreditLimit != nil {
		if req.AccountType != domain.Credit {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCreditLimitOnNonCredit)
		}
		if err := validateAmount(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	linkedAccountID := ""
	if req.LinkedAccountID != nil && *req.LinkedAccountID != "" {
		linked, err := s.GetAccountByID(ctx, *req.LinkedAccountID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLinkedAccountInvalid, err)
		}
		if linked.IsCredit() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLinkedAccountInvalid)
		}
		linkedAccountID = linked.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		AccountType:     req.AccountType,
		Balance:         req.Balance,
		CreditLimit:     req.CreditLimit,
		LinkedAccountID: linkedAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves an account, folding ownership failures into
// NotFound so the existence of another user's account is never revealed.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.UserID != userID {
		middleware.GetLoggerFromCtx(ctx).Warn("Account found but owned by different user", slog.String("account_id", accountID))
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts; every requested account must
// exist and belong to the requesting user.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string, userID string) (map[string]domain.Account, error) {
	unique := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	for _, id := range unique {
		account, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if account.UserID != userID {
			middleware.GetLoggerFromCtx(ctx).Warn("Account owned by different user requested", slog.String("account_id", id))
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	return accounts, nil
}

// ListAccounts retrieves the user's accounts with projected balances. The
// per-account histories are fetched concurrently; projection itself is a pure
// fold, so no coordination is needed beyond the fetches.
func (s *accountService) ListAccounts(ctx context.Context, userID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	responses := make([]dto.AccountWithBalanceResponse, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range accounts {
		g.Go(func() error {
			account := accounts[i]
			projected, err := s.projectBalance(gctx, account)
			if err != nil {
				return err
			}
			responses[i] = dto.AccountWithBalanceResponse{
				AccountResponse:        dto.ToAccountResponse(&account),
				AccountBalanceResponse: toBalanceResponse(account, projected),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Failed to project account balances", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to project account balances: %w", err)
	}

	return &dto.ListAccountsResponse{Accounts: responses}, nil
}

// UpdateAccount updates account details. This is the only write path allowed
// to move the baseline checkpoint, and only by explicit user request.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Balance != nil {
		if !req.Balance.Equal(req.Balance.Round(2)) {
			return nil, fmt.Errorf("%w: baseline balance must have at most two fractional digits", apperrors.ErrValidation)
		}
		account.Balance = *req.Balance
		updated = true
	}
	if req.CreditLimit != nil {
		if !account.IsCredit() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCreditLimitOnNonCredit)
		}
		account.CreditLimit = req.CreditLimit
		updated = true
	}
	if req.LinkedAccountID != nil {
		linkedAccountID := ""
		if *req.LinkedAccountID != "" {
			linked, err := s.GetAccountByID(ctx, *req.LinkedAccountID, userID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrLinkedAccountInvalid, err)
			}
			if linked.IsCredit() {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLinkedAccountInvalid)
			}
			linkedAccountID = linked.AccountID
		}
		account.LinkedAccountID = linkedAccountID
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account owned by the user.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deleted successfully", slog.String("account_id", accountID))
	return nil
}

// SetDefaultAccount marks the account as the user's default. The repository
// performs the toggle as one atomic operation over all of the user's
// accounts, so concurrent requests cannot leave two defaults standing.
func (s *accountService) SetDefaultAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.SetDefaultAccount(ctx, userID, accountID, userID, now); err != nil {
		logger.Error("Failed to set default account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	account.IsDefault = true
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	logger.Info("Default account set", slog.String("account_id", accountID))
	return account, nil
}

// ProjectAccountBalance derives the account's live balance. The stored
// baseline is never returned directly.
func (s *accountService) ProjectAccountBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.projectBalance(ctx, *account)
}

// projectBalance fetches the account's transaction and contribution history
// concurrently and folds it into the live balance.
func (s *accountService) projectBalance(ctx context.Context, account domain.Account) (decimal.Decimal, error) {
	var (
		transactions  []domain.Transaction
		contributions []domain.Contribution
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListTransactionsByAccount(gctx, account.AccountID)
		return err
	})
	g.Go(func() error {
		var err error
		contributions, err = s.contributionRepo.ListContributionsByAccount(gctx, account.AccountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to load account history for %s: %w", account.AccountID, err)
	}

	return accounting.ProjectBalance(account, transactions, contributions)
}

// toBalanceResponse packages a projection with its presentation values.
func toBalanceResponse(account domain.Account, projected decimal.Decimal) dto.AccountBalanceResponse {
	return dto.ToAccountBalanceResponse(&account, projected)
}
