package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetType mirrors domain.BudgetType for DB storage.
type BudgetType string

// Budget is the database representation of a budget row.
type Budget struct {
	BudgetID  string
	UserID    string
	Category  string
	Amount    decimal.Decimal
	Period    string
	Type      BudgetType
	StartDate time.Time
	EndDate   time.Time
	AuditFields
}

// Category is the database representation of a category row.
type Category struct {
	CategoryID string
	UserID     string
	Name       string
	AuditFields
}
