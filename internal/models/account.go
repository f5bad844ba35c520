package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the database representation of an account row.
type Account struct {
	AccountID       string
	UserID          string
	Name            string
	AccountType     AccountType
	Balance         decimal.Decimal
	CreditLimit     *decimal.Decimal
	IsDefault       bool
	LinkedAccountID string
	AuditFields
}
