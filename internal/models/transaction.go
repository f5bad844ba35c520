package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

// Transaction is the database representation of a transaction row.
type Transaction struct {
	TransactionID   string
	UserID          string
	AccountID       string
	CategoryID      string
	Amount          decimal.Decimal
	TransactionType TransactionType
	Date            time.Time
	Description     string
	AuditFields
}
