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

const defaultBillPaymentDescription = "Credit card payment"

// billPaymentService settles a credit account's owed balance from a bank-type
// account. The payment is recorded purely as a transaction pair (an expense on
// the bank side, an income on the credit side) persisted atomically; both
// projections shift by the payment amount without any balance field being
// written.
type billPaymentService struct {
	transactionRepo portsrepo.TransactionWriter
	accountSvc      portssvc.AccountSvcFacade
}

// NewBillPaymentService creates a new BillPaymentService.
func NewBillPaymentService(transactionRepo portsrepo.TransactionWriter, accountSvc portssvc.AccountSvcFacade) portssvc.BillPaymentSvc {
	return &billPaymentService{
		transactionRepo: transactionRepo,
		accountSvc:      accountSvc,
	}
}

var _ portssvc.BillPaymentSvc = (*billPaymentService)(nil)

// PayBill validates both accounts, then persists the expense/income pair as
// one all-or-nothing unit. On any failure nothing is persisted and the
// operation is safe to retry.
func (s *billPaymentService) PayBill(ctx context.Context, req dto.PayBillRequest, userID string) (*dto.PayBillResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.CreditAccountID == req.BankAccountID {
		return nil, fmt.Errorf("%w: credit and bank accounts must differ", apperrors.ErrValidation)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, []string{req.CreditAccountID, req.BankAccountID}, userID)
	if err != nil {
		return nil, err
	}
	creditAccount := accounts[req.CreditAccountID]
	bankAccount := accounts[req.BankAccountID]

	if !creditAccount.IsCredit() {
		return nil, fmt.Errorf("%w: account %s is not a credit account", apperrors.ErrPrecondition, req.CreditAccountID)
	}
	if bankAccount.IsCredit() {
		return nil, fmt.Errorf("%w: account %s cannot fund a bill payment", apperrors.ErrPrecondition, req.BankAccountID)
	}

	description := defaultBillPaymentDescription
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	bankTxn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       req.BankAccountID,
		Amount:          req.Amount,
		TransactionType: domain.Expense,
		Date:            req.Date,
		Description:     description,
		AuditFields:     audit,
	}
	creditTxn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       req.CreditAccountID,
		Amount:          req.Amount,
		TransactionType: domain.Income,
		Date:            req.Date,
		Description:     description,
		AuditFields:     audit,
	}

	if err := s.transactionRepo.SaveTransferPair(ctx, bankTxn, creditTxn); err != nil {
		logger.Error("Failed to persist bill payment pair",
			slog.String("error", err.Error()),
			slog.String("bank_account_id", req.BankAccountID),
			slog.String("credit_account_id", req.CreditAccountID))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: saving bill payment pair: %v", apperrors.ErrTransactionFailure, err)
	}

	logger.Info("Bill payment recorded successfully",
		slog.String("bank_transaction_id", bankTxn.TransactionID),
		slog.String("credit_transaction_id", creditTxn.TransactionID),
		slog.String("amount", req.Amount.String()))

	resp := &dto.PayBillResponse{
		BankTransaction:   dto.ToTransactionResponse(&bankTxn),
		CreditTransaction: dto.ToTransactionResponse(&creditTxn),
	}

	// The pair is committed at this point. A projection read failure must not
	// surface as a payment error, or clients would retry a payment that stands.
	projected, err := s.accountSvc.ProjectAccountBalance(ctx, req.BankAccountID, userID)
	if err != nil {
		logger.Warn("Bill payment committed but bank balance projection unavailable",
			slog.String("error", err.Error()),
			slog.String("bank_account_id", req.BankAccountID))
		return resp, nil
	}

	balance := toBalanceResponse(bankAccount, projected)
	resp.BankBalance = &balance
	return resp, nil
}
