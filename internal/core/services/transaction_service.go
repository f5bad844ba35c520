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

// transactionService provides income/expense transaction operations.
//
// Transactions are always derived, never baked into the account baseline: a
// create or delete only adds or removes a term from the projector's fold.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountSvc      portssvc.AccountReaderSvc
	categoryRepo    portsrepo.CategoryReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountReaderSvc, categoryRepo portsrepo.CategoryReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountSvc:      accountSvc,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateCategoryOwnership checks an optional category reference. A missing
// or foreign category surfaces as NotFound.
func (s *transactionService) validateCategoryOwnership(ctx context.Context, categoryID string, userID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("category %s: %w", categoryID, err)
	}
	if category.UserID != userID {
		middleware.GetLoggerFromCtx(ctx).Warn("Category owned by different user referenced", slog.String("category_id", categoryID))
		return fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}
	return nil
}

// CreateTransaction validates and persists a new transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.TransactionType != domain.Income && req.TransactionType != domain.Expense {
		return nil, fmt.Errorf("%w: unknown transaction type %s", apperrors.ErrValidation, req.TransactionType)
	}

	if _, err := s.accountSvc.GetAccountByID(ctx, req.AccountID, userID); err != nil {
		return nil, err
	}

	categoryID := ""
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
		if err := s.validateCategoryOwnership(ctx, categoryID, userID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       req.AccountID,
		CategoryID:      categoryID,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		Date:            req.Date,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction owned by the requesting user.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	if txn.UserID != userID {
		middleware.GetLoggerFromCtx(ctx).Warn("Transaction found but owned by different user", slog.String("transaction_id", transactionID))
		return nil, apperrors.ErrNotFound
	}

	return txn, nil
}

// ListTransactions retrieves a paginated list of the user's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	transactions, err := s.transactionRepo.ListTransactionsByUser(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(transactions)}, nil
}

// ListTransactionsByAccount retrieves all transactions of one account owned by the user.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, userID string) ([]domain.Transaction, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID, userID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list account transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}

	return transactions, nil
}

// UpdateTransaction updates an existing transaction owned by the user.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *req.Amount
		updated = true
	}
	if req.TransactionType != nil {
		if *req.TransactionType != domain.Income && *req.TransactionType != domain.Expense {
			return nil, fmt.Errorf("%w: unknown transaction type %s", apperrors.ErrValidation, *req.TransactionType)
		}
		txn.TransactionType = *req.TransactionType
		updated = true
	}
	if req.CategoryID != nil {
		if err := s.validateCategoryOwnership(ctx, *req.CategoryID, userID); err != nil {
			return nil, err
		}
		txn.CategoryID = *req.CategoryID
		updated = true
	}
	if req.Date != nil {
		txn.Date = *req.Date
		updated = true
	}
	if req.Description != nil {
		txn.Description = *req.Description
		updated = true
	}

	if !updated {
		return txn, nil
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction updated successfully", slog.String("transaction_id", transactionID))
	return txn, nil
}

// DeleteTransaction removes a transaction owned by the user. Deletion only
// removes a term from the projector's fold; the account baseline is untouched.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetTransactionByID(ctx, transactionID, userID); err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transaction deleted successfully", slog.String("transaction_id", transactionID))
	return nil
}
