package accounting

import (
	"fmt"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to a transaction amount based on its type.
// This is the single place the INCOME/EXPENSE sign convention lives; services
// and repositories must never re-derive it.
func SignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	switch txn.TransactionType {
	case domain.Income:
		return txn.Amount, nil
	case domain.Expense:
		return txn.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s' for transaction %s", txn.TransactionType, txn.TransactionID)
	}
}

// ProjectBalance computes an account's live balance from its baseline
// checkpoint plus the net effect of its transactions and contributions.
//
// The fold is over commutative addition, so the result is independent of the
// order of the input collections. Transactions and contributions belonging to
// other accounts are skipped, so callers may pass unfiltered snapshots.
//
// For CREDIT accounts the stored baseline is vestigial and the fold starts
// from zero; their balance is purely transaction history. The result for a
// credit account is therefore negative while money is owed.
func ProjectBalance(account domain.Account, transactions []domain.Transaction, contributions []domain.Contribution) (decimal.Decimal, error) {
	balance := account.Balance
	if account.IsCredit() {
		balance = decimal.Zero
	}

	for _, txn := range transactions {
		if txn.AccountID != account.AccountID {
			continue
		}
		signed, err := SignedAmount(txn)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}

	// Contributions always deplete the funding account.
	for _, c := range contributions {
		if c.AccountID != account.AccountID {
			continue
		}
		balance = balance.Sub(c.Amount)
	}

	return balance, nil
}

// OwedAmount returns the positive magnitude a credit account currently owes.
// For non-credit accounts it returns zero.
func OwedAmount(account domain.Account, projected decimal.Decimal) decimal.Decimal {
	if !account.IsCredit() {
		return decimal.Zero
	}
	if projected.IsPositive() {
		return decimal.Zero
	}
	return projected.Neg()
}

// DisplayBalance applies the presentation rule layered on top of the
// projection: a credit account's balance is shown negated-magnitude style, so
// owed money reads as a negative amount rather than positive debt. An
// overpayment surplus stays visible as a positive amount rather than clamping
// to zero. It is deliberately not part of ProjectBalance.
func DisplayBalance(account domain.Account, projected decimal.Decimal) decimal.Decimal {
	if account.IsCredit() && !projected.IsPositive() {
		return OwedAmount(account, projected).Neg()
	}
	return projected
}

// SumContributions folds the amounts of all contributions feeding the given
// budget. This is how a goal's saved total is derived; it is never stored.
func SumContributions(budgetID string, contributions []domain.Contribution) decimal.Decimal {
	total := decimal.Zero
	for _, c := range contributions {
		if c.BudgetID == budgetID {
			total = total.Add(c.Amount)
		}
	}
	return total
}
