package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or depletes its account.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a single income or expense entry against one account.
// Amount is always positive; the sign of its effect on the balance is derived
// from TransactionType, never stored.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Primary key (UUID)
	UserID          string          `json:"userID"`          // Owning user (NON-NULL)
	AccountID       string          `json:"accountID"`       // FK -> Account.accountID (NON-NULL)
	CategoryID      string          `json:"categoryID"`      // Nullable FK -> Category.categoryID
	Amount          decimal.Decimal `json:"amount"`          // Positive value
	TransactionType TransactionType `json:"transactionType"` // INCOME or EXPENSE (NON-NULL)
	Date            time.Time       `json:"date"`            // Date the transaction occurred
	Description     string          `json:"description"`     // Nullable user description
	AuditFields
}
