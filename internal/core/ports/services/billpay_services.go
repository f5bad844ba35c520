package services

import (
	"context"

	"github.com/finly-app/finly_backend/internal/dto"
)

// BillPaymentSvc coordinates the composite bill payment operation: settling a
// credit account's owed balance from a bank-type account as one all-or-nothing
// unit of work.
type BillPaymentSvc interface {
	// PayBill creates the expense/income transaction pair across the bank and
	// credit accounts atomically. On failure nothing is persisted and the
	// operation is safe to retry.
	PayBill(ctx context.Context, req dto.PayBillRequest, userID string) (*dto.PayBillResponse, error)
}
