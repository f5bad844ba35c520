package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account for balance and presentation rules.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Credit     AccountType = "CREDIT"
	Investment AccountType = "INVESTMENT"
	Wallet     AccountType = "WALLET"
	Other      AccountType = "OTHER"
)

// Account represents a financial account within the core domain.
//
// Balance is a stored checkpoint, not the live balance. The live balance is
// always derived by the projector in utils/accounting from this checkpoint
// plus the account's transaction and contribution history. For CREDIT
// accounts the checkpoint is vestigial: their balance is derived purely from
// transaction history.
type Account struct {
	AccountID       string           `json:"accountID"`       // Primary key (UUID)
	UserID          string           `json:"userID"`          // Owning user (NON-NULL)
	Name            string           `json:"name"`            // User-defined name
	AccountType     AccountType      `json:"accountType"`     // CHECKING, CREDIT, etc.
	Balance         decimal.Decimal  `json:"balance"`         // Baseline checkpoint
	CreditLimit     *decimal.Decimal `json:"creditLimit"`     // Nullable, CREDIT accounts only
	IsDefault       bool             `json:"isDefault"`       // At most one true per user
	LinkedAccountID string           `json:"linkedAccountID"` // Nullable self-reference (credit card -> funding account)
	AuditFields
}

// IsCredit reports whether the account is a credit-type account.
func (a Account) IsCredit() bool {
	return a.AccountType == Credit
}
