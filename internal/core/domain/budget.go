package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetType distinguishes spending budgets from savings goals.
type BudgetType string

const (
	BudgetIncome  BudgetType = "INCOME"
	BudgetExpense BudgetType = "EXPENSE"
	BudgetGoal    BudgetType = "GOAL"
)

// Budget represents a budget or savings goal. A goal's saved amount is never
// stored; it is the sum of all contributions whose BudgetID matches,
// computed on read.
type Budget struct {
	BudgetID  string          `json:"budgetID"` // Primary key (UUID)
	UserID    string          `json:"userID"`   // Owning user (NON-NULL)
	Category  string          `json:"category"` // Category label
	Amount    decimal.Decimal `json:"amount"`   // Target amount
	Period    string          `json:"period"`   // e.g. "monthly"
	Type      BudgetType      `json:"type"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	AuditFields
}

// Category labels transactions. Category CRUD is handled elsewhere; it exists
// in the core only so transaction writes can verify ownership.
type Category struct {
	CategoryID string `json:"categoryID"`
	UserID     string `json:"userID"`
	Name       string `json:"name"`
	AuditFields
}
