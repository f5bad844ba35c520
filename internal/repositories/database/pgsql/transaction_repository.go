package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	"github.com/finly-app/finly_backend/internal/models"
	"github.com/finly-app/finly_backend/internal/utils/mapping"
)

const transactionColumns = `transaction_id, user_id, account_id, category_id, amount, transaction_type, date, description, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
// It needs the account repository to lock account rows inside its atomic units.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var modelTxn models.Transaction
	var categoryID sql.NullString
	var description sql.NullString

	err := row.Scan(
		&modelTxn.TransactionID,
		&modelTxn.UserID,
		&modelTxn.AccountID,
		&categoryID,
		&modelTxn.Amount,
		&modelTxn.TransactionType,
		&modelTxn.Date,
		&description,
		&modelTxn.CreatedAt,
		&modelTxn.CreatedBy,
		&modelTxn.LastUpdatedAt,
		&modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	if categoryID.Valid {
		modelTxn.CategoryID = categoryID.String
	}
	if description.Valid {
		modelTxn.Description = description.String
	}
	return modelTxn, nil
}

func execInsertTransaction(ctx context.Context, tx pgx.Tx, modelTxn models.Transaction) error {
	var categoryID sql.NullString
	if modelTxn.CategoryID != "" {
		categoryID = sql.NullString{String: modelTxn.CategoryID, Valid: true}
	}
	var description sql.NullString
	if modelTxn.Description != "" {
		description = sql.NullString{String: modelTxn.Description, Valid: true}
	}

	_, err := tx.Exec(ctx, insertTransactionQuery,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		categoryID,
		modelTxn.Amount,
		modelTxn.TransactionType,
		modelTxn.Date,
		description,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	return err
}

// SaveTransaction persists a new transaction. The owning account row is
// locked for the duration of the write so concurrent mutations of the same
// account serialize, and the insert fails cleanly if the account vanished.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{txn.AccountID}); err != nil {
		return err
	}

	if err := execInsertTransaction(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveTransferPair persists two transactions belonging to different accounts
// as one all-or-nothing unit. Both account rows are locked for update before
// either insert; the locking query orders by account_id so concurrent pairs
// over the same accounts cannot deadlock.
func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, first domain.Transaction, second domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := []string{first.AccountID, second.AccountID}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, txn := range []domain.Transaction{first, second} {
		modelTxn := mapping.ToModelTransaction(txn)
		var categoryID sql.NullString
		if modelTxn.CategoryID != "" {
			categoryID = sql.NullString{String: modelTxn.CategoryID, Valid: true}
		}
		var description sql.NullString
		if modelTxn.Description != "" {
			description = sql.NullString{String: modelTxn.Description, Valid: true}
		}
		batch.Queue(insertTransactionQuery,
			modelTxn.TransactionID,
			modelTxn.UserID,
			modelTxn.AccountID,
			categoryID,
			modelTxn.Amount,
			modelTxn.TransactionType,
			modelTxn.Date,
			description,
			modelTxn.CreatedAt,
			modelTxn.CreatedBy,
			modelTxn.LastUpdatedAt,
			modelTxn.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert transfer pair %s/%s: %w", first.TransactionID, second.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactionsByAccount retrieves all transactions for one account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY date, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// ListTransactionsByUser retrieves a paginated list of a user's transactions,
// most recent first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// UpdateTransaction updates an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET category_id = $2, amount = $3, transaction_type = $4, date = $5, description = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	var categoryID sql.NullString
	if modelTxn.CategoryID != "" {
		categoryID = sql.NullString{String: modelTxn.CategoryID, Valid: true}
	}
	var description sql.NullString
	if modelTxn.Description != "" {
		description = sql.NullString{String: modelTxn.Description, Valid: true}
	}

	tag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		categoryID,
		modelTxn.Amount,
		modelTxn.TransactionType,
		modelTxn.Date,
		description,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
