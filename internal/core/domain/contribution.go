package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is a money movement from a funding account toward a savings
// goal. It behaves like an expense against the funding account and accrues
// toward the goal's derived saved total.
type Contribution struct {
	ContributionID string          `json:"contributionID"` // Primary key (UUID)
	UserID         string          `json:"userID"`         // Owning user (NON-NULL)
	BudgetID       string          `json:"budgetID"`       // FK -> Budget.budgetID, the goal it feeds
	AccountID      string          `json:"accountID"`      // FK -> Account.accountID, the funding account
	Amount         decimal.Decimal `json:"amount"`         // Positive value
	Date           time.Time       `json:"date"`
	Method         string          `json:"method"` // Free-form method label
	AuditFields
}
