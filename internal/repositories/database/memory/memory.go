// Package memory provides in-memory implementations of the repository ports.
// They back the service-level integration tests, where a real database would
// only slow the suites down, and support failure injection for exercising
// all-or-nothing guarantees.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
)

// Store holds all in-memory tables behind one mutex, so multi-table units
// commit atomically the same way a database transaction would.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]domain.Account
	transactions  map[string]domain.Transaction
	contributions map[string]domain.Contribution
	budgets       map[string]domain.Budget
	categories    map[string]domain.Category

	// failTransferSecondInsert simulates a mid-unit storage failure in
	// SaveTransferPair after the first insert would have happened. The
	// unit must leave no trace behind.
	failTransferSecondInsert bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]domain.Account),
		transactions:  make(map[string]domain.Transaction),
		contributions: make(map[string]domain.Contribution),
		budgets:       make(map[string]domain.Budget),
		categories:    make(map[string]domain.Category),
	}
}

// FailNextTransfer arms the transfer failure injection for the next
// SaveTransferPair call.
func (s *Store) FailNextTransfer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failTransferSecondInsert = true
}

// TransactionCount reports the number of stored transactions.
func (s *Store) TransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

// checkSingleDefault models the partial unique index the pgsql schema puts on
// accounts(user_id) WHERE is_default: at most one default row per user, checked
// after every row write. Callers must hold the store lock.
func (s *Store) checkSingleDefault(userID string) error {
	count := 0
	for _, account := range s.accounts {
		if account.UserID == userID && account.IsDefault {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("%w: more than one default account for user %s", apperrors.ErrConflict, userID)
	}
	return nil
}

// SeedCategory inserts a category directly; category CRUD is out of scope
// for the repositories proper.
func (s *Store) SeedCategory(category domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.CategoryID] = category
}

// NewRepositoryProvider wires the in-memory repositories over one shared store.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      &AccountRepository{s: s},
		TransactionRepo:  &TransactionRepository{s: s},
		ContributionRepo: &ContributionRepository{s: s},
		BudgetRepo:       &BudgetRepository{s: s},
		CategoryRepo:     &CategoryRepository{s: s},
	}
}

/* ---- Account repository ---- */

type AccountRepository struct{ s *Store }

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	r.s.accounts[account.AccountID] = account
	return nil
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	account, ok := r.s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (r *AccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]domain.Account)
	for _, id := range accountIDs {
		if account, ok := r.s.accounts[id]; ok {
			out[id] = account
		}
	}
	return out, nil
}

func (r *AccountRepository) ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Account
	for _, account := range r.s.accounts {
		if account.UserID == userID {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[account.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.accounts[account.AccountID] = account
	return nil
}

func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.accounts, accountID)
	return nil
}

func (r *AccountRepository) SetDefaultAccount(ctx context.Context, userID string, accountID string, updatedByUserID string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	target, ok := r.s.accounts[accountID]
	if !ok || target.UserID != userID {
		return apperrors.ErrNotFound
	}

	// Unset before set, same as the pgsql repository: the uniqueness check on
	// the default flag runs after every row write and must never see two live
	// defaults mid-operation.
	for id, account := range r.s.accounts {
		if account.UserID != userID || !account.IsDefault {
			continue
		}
		account.IsDefault = false
		account.LastUpdatedAt = now
		account.LastUpdatedBy = updatedByUserID
		r.s.accounts[id] = account
		if err := r.s.checkSingleDefault(userID); err != nil {
			return err
		}
	}

	target.IsDefault = true
	target.LastUpdatedAt = now
	target.LastUpdatedBy = updatedByUserID
	r.s.accounts[accountID] = target
	return r.s.checkSingleDefault(userID)
}

/* ---- Transaction repository ---- */

type TransactionRepository struct{ s *Store }

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[txn.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, txn.AccountID)
	}
	r.s.transactions[txn.TransactionID] = txn
	return nil
}

func (r *TransactionRepository) SaveTransferPair(ctx context.Context, first domain.Transaction, second domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, txn := range []domain.Transaction{first, second} {
		if _, ok := r.s.accounts[txn.AccountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, txn.AccountID)
		}
	}

	if r.s.failTransferSecondInsert {
		r.s.failTransferSecondInsert = false
		// Neither insert survives: the unit rolls back as a whole.
		return fmt.Errorf("injected storage failure after first insert")
	}

	r.s.transactions[first.TransactionID] = first
	r.s.transactions[second.TransactionID] = second
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	txn, ok := r.s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *TransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Transaction
	for _, txn := range r.s.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out, nil
}

func (r *TransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Transaction
	for _, txn := range r.s.transactions {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].TransactionID < out[j].TransactionID
		}
		return out[i].Date.After(out[j].Date)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.transactions[txn.TransactionID] = txn
	return nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.transactions, transactionID)
	return nil
}

/* ---- Contribution repository ---- */

type ContributionRepository struct{ s *Store }

var _ portsrepo.ContributionRepositoryFacade = (*ContributionRepository)(nil)

func (r *ContributionRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[contribution.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, contribution.AccountID)
	}
	r.s.contributions[contribution.ContributionID] = contribution
	return nil
}

func (r *ContributionRepository) DeleteContribution(ctx context.Context, contributionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contributions[contributionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.contributions, contributionID)
	return nil
}

func (r *ContributionRepository) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	contribution, ok := r.s.contributions[contributionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &contribution, nil
}

func (r *ContributionRepository) ListContributionsByBudget(ctx context.Context, budgetID string) ([]domain.Contribution, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Contribution
	for _, contribution := range r.s.contributions {
		if contribution.BudgetID == budgetID {
			out = append(out, contribution)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContributionID < out[j].ContributionID })
	return out, nil
}

func (r *ContributionRepository) ListContributionsByAccount(ctx context.Context, accountID string) ([]domain.Contribution, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Contribution
	for _, contribution := range r.s.contributions {
		if contribution.AccountID == accountID {
			out = append(out, contribution)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContributionID < out[j].ContributionID })
	return out, nil
}

/* ---- Budget repository ---- */

type BudgetRepository struct{ s *Store }

var _ portsrepo.BudgetRepositoryFacade = (*BudgetRepository)(nil)

func (r *BudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.budgets[budget.BudgetID]; exists {
		return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, budget.BudgetID)
	}
	r.s.budgets[budget.BudgetID] = budget
	return nil
}

func (r *BudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	budget, ok := r.s.budgets[budgetID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &budget, nil
}

func (r *BudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Budget
	for _, budget := range r.s.budgets {
		if budget.UserID == userID {
			out = append(out, budget)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BudgetID < out[j].BudgetID })
	return out, nil
}

func (r *BudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.budgets[budget.BudgetID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.budgets[budget.BudgetID] = budget
	return nil
}

func (r *BudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.budgets[budgetID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.budgets, budgetID)
	return nil
}

/* ---- Category repository ---- */

type CategoryRepository struct{ s *Store }

var _ portsrepo.CategoryReader = (*CategoryRepository)(nil)

func (r *CategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	category, ok := r.s.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &category, nil
}
