package pgsql

import (
	"context"
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

const contributionColumns = `contribution_id, user_id, budget_id, account_id, amount, date, method, created_at, created_by, last_updated_at, last_updated_by`

type PgxContributionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxContributionRepository creates a new repository for contribution data.
func newPgxContributionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxContributionRepository {
	return &PgxContributionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.ContributionRepositoryFacade = (*PgxContributionRepository)(nil)

func scanContribution(row pgx.Row) (models.Contribution, error) {
	var modelContribution models.Contribution
	err := row.Scan(
		&modelContribution.ContributionID,
		&modelContribution.UserID,
		&modelContribution.BudgetID,
		&modelContribution.AccountID,
		&modelContribution.Amount,
		&modelContribution.Date,
		&modelContribution.Method,
		&modelContribution.CreatedAt,
		&modelContribution.CreatedBy,
		&modelContribution.LastUpdatedAt,
		&modelContribution.LastUpdatedBy,
	)
	return modelContribution, err
}

// SaveContribution persists a new contribution. The funding account row is
// locked for the duration of the unit, so the insert serializes with other
// mutations of the same account and fails cleanly if the account vanished.
func (r *PgxContributionRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{contribution.AccountID}); err != nil {
		return err
	}

	modelContribution := mapping.ToModelContribution(contribution)
	query := `
		INSERT INTO contributions (` + contributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		modelContribution.ContributionID,
		modelContribution.UserID,
		modelContribution.BudgetID,
		modelContribution.AccountID,
		modelContribution.Amount,
		modelContribution.Date,
		modelContribution.Method,
		modelContribution.CreatedAt,
		modelContribution.CreatedBy,
		modelContribution.LastUpdatedAt,
		modelContribution.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contribution %s: %w", modelContribution.ContributionID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteContribution removes a contribution under the funding account's row
// lock, so the removal serializes with concurrent projections' history reads
// done inside mutating units.
func (r *PgxContributionRepository) DeleteContribution(ctx context.Context, contributionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var accountID string
	err = tx.QueryRow(ctx, `SELECT account_id FROM contributions WHERE contribution_id = $1;`, contributionID).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to find contribution %s for delete: %w", contributionID, err)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID}); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM contributions WHERE contribution_id = $1;`, contributionID)
	if err != nil {
		return fmt.Errorf("failed to delete contribution %s: %w", contributionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindContributionByID retrieves a contribution by its ID.
func (r *PgxContributionRepository) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	query := `
		SELECT ` + contributionColumns + `
		FROM contributions
		WHERE contribution_id = $1;
	`
	modelContribution, err := scanContribution(r.Pool.QueryRow(ctx, query, contributionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contribution by ID %s: %w", contributionID, err)
	}

	domainContribution := mapping.ToDomainContribution(modelContribution)
	return &domainContribution, nil
}

// ListContributionsByBudget retrieves all contributions feeding one budget.
func (r *PgxContributionRepository) ListContributionsByBudget(ctx context.Context, budgetID string) ([]domain.Contribution, error) {
	query := `
		SELECT ` + contributionColumns + `
		FROM contributions
		WHERE budget_id = $1
		ORDER BY date, contribution_id;
	`
	return r.queryContributions(ctx, query, budgetID)
}

// ListContributionsByAccount retrieves all contributions funded by one account.
func (r *PgxContributionRepository) ListContributionsByAccount(ctx context.Context, accountID string) ([]domain.Contribution, error) {
	query := `
		SELECT ` + contributionColumns + `
		FROM contributions
		WHERE account_id = $1
		ORDER BY date, contribution_id;
	`
	return r.queryContributions(ctx, query, accountID)
}

func (r *PgxContributionRepository) queryContributions(ctx context.Context, query string, arg any) ([]domain.Contribution, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		modelContribution, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution row: %w", err)
		}
		contributions = append(contributions, modelContribution)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contribution rows: %w", err)
	}

	return mapping.ToDomainContributionSlice(contributions), nil
}
