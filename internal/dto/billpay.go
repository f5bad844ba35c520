package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayBillRequest defines the data needed to settle a credit account's owed
// balance from a bank-type account.
type PayBillRequest struct {
	CreditAccountID string          `json:"creditAccountId" binding:"required,uuid"`
	BankAccountID   string          `json:"bankAccountId" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	Description     *string         `json:"description"`
}

// PayBillResponse returns the two transactions created by a bill payment plus
// the funding account's post-payment projection. BankBalance is nil when the
// payment committed but the projection read failed afterwards; the payment
// itself stands and must not be retried.
type PayBillResponse struct {
	BankTransaction   TransactionResponse     `json:"bankTransaction"`
	CreditTransaction TransactionResponse     `json:"creditTransaction"`
	BankBalance       *AccountBalanceResponse `json:"bankBalance,omitempty"`
}
