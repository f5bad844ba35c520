package repositories

import (
	"context"

	"github.com/finly-app/finly_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves all transactions for one account.
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByUser retrieves a paginated list of a user's transactions,
	// most recent first.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction. The owning account row is
	// locked for the duration of the write so concurrent mutations of the
	// same account serialize.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// SaveTransferPair persists two transactions belonging to different
	// accounts as one atomic unit: both rows become visible together at
	// commit, or neither does. Both account rows are locked for update in a
	// deterministic order for the duration of the unit.
	SaveTransferPair(ctx context.Context, first domain.Transaction, second domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
