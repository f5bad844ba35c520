package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is the database representation of a contribution row.
type Contribution struct {
	ContributionID string
	UserID         string
	BudgetID       string
	AccountID      string
	Amount         decimal.Decimal
	Date           time.Time
	Method         string
	AuditFields
}
