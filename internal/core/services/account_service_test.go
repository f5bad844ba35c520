package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/core/services"
	"github.com/finly-app/finly_backend/internal/dto"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo      *MockAccountRepository
	mockTransactionRepo  *MockTransactionRepository
	mockContributionRepo *MockContributionRepository
	service              portssvc.AccountSvcFacade

	testUserID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockContributionRepo = new(MockContributionRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTransactionRepo, suite.mockContributionRepo)
	suite.testUserID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) newAccount(accountType domain.AccountType, baseline string) domain.Account {
	now := time.Now().UTC()
	return domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.testUserID,
		Name:        "Test Account",
		AccountType: accountType,
		Balance:     decimal.RequireFromString(baseline),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     suite.testUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: suite.testUserID,
		},
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Main Checking",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString("1000.00"),
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(req.Name, created.Name)
	suite.Equal(req.AccountType, created.AccountType)
	suite.True(created.Balance.Equal(req.Balance))
	suite.False(created.IsDefault)
	suite.Equal(suite.testUserID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditLimitOnNonCredit() {
	ctx := context.Background()
	limit := decimal.RequireFromString("500.00")
	req := dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: domain.Checking,
		CreditLimit: &limit,
	}

	created, err := suite.service.CreateAccount(ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_BaselineTooPrecise() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString("10.999"),
	}

	_, err := suite.service.CreateAccount(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherUsersAccountHidden() {
	ctx := context.Background()
	foreign := suite.newAccount(domain.Checking, "100.00")
	foreign.UserID = uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(&foreign, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, foreign.AccountID, suite.testUserID)

	// Ownership failures are indistinguishable from absence.
	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_PartialMissingFails() {
	ctx := context.Background()
	owned := suite.newAccount(domain.Checking, "100.00")
	missingID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string]domain.Account{owned.AccountID: owned}, nil).Once()

	accounts, err := suite.service.GetAccountsByIDs(ctx, []string{owned.AccountID, missingID}, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestProjectAccountBalance_FoldsHistory() {
	ctx := context.Background()
	account := suite.newAccount(domain.Checking, "1000.00")

	txns := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			UserID:          suite.testUserID,
			AccountID:       account.AccountID,
			Amount:          decimal.RequireFromString("200.00"),
			TransactionType: domain.Expense,
		},
	}
	contribs := []domain.Contribution{
		{
			ContributionID: uuid.NewString(),
			UserID:         suite.testUserID,
			AccountID:      account.AccountID,
			Amount:         decimal.RequireFromString("50.00"),
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsByAccount", mock.Anything, account.AccountID).Return(txns, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByAccount", mock.Anything, account.AccountID).Return(contribs, nil).Once()

	projected, err := suite.service.ProjectAccountBalance(ctx, account.AccountID, suite.testUserID)

	suite.Require().NoError(err)
	suite.True(projected.Equal(decimal.RequireFromString("750.00")), "expected 750.00, got %s", projected)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestProjectAccountBalance_CreditIgnoresBaseline() {
	ctx := context.Background()
	account := suite.newAccount(domain.Credit, "9999.00") // stale baseline must not leak into the projection

	txns := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			UserID:          suite.testUserID,
			AccountID:       account.AccountID,
			Amount:          decimal.RequireFromString("300.00"),
			TransactionType: domain.Expense,
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsByAccount", mock.Anything, account.AccountID).Return(txns, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByAccount", mock.Anything, account.AccountID).Return([]domain.Contribution{}, nil).Once()

	projected, err := suite.service.ProjectAccountBalance(ctx, account.AccountID, suite.testUserID)

	suite.Require().NoError(err)
	suite.True(projected.Equal(decimal.RequireFromString("-300.00")), "expected -300.00, got %s", projected)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ProjectsEachAccount() {
	ctx := context.Background()
	first := suite.newAccount(domain.Checking, "100.00")
	second := suite.newAccount(domain.Savings, "200.00")
	params := dto.ListAccountsParams{Limit: 20, Offset: 0}

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.testUserID, 20, 0).
		Return([]domain.Account{first, second}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsByAccount", mock.Anything, first.AccountID).Return([]domain.Transaction{}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsByAccount", mock.Anything, second.AccountID).Return([]domain.Transaction{}, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByAccount", mock.Anything, first.AccountID).Return([]domain.Contribution{}, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByAccount", mock.Anything, second.AccountID).Return([]domain.Contribution{}, nil).Once()

	resp, err := suite.service.ListAccounts(ctx, suite.testUserID, params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Accounts, 2)
	suite.Equal(first.AccountID, resp.Accounts[0].AccountResponse.AccountID)
	suite.True(resp.Accounts[0].ProjectedBalance.Equal(decimal.RequireFromString("100.00")))
	suite.True(resp.Accounts[1].ProjectedBalance.Equal(decimal.RequireFromString("200.00")))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_MovesBaseline() {
	ctx := context.Background()
	account := suite.newAccount(domain.Checking, "100.00")
	newBaseline := decimal.RequireFromString("500.00")
	req := dto.UpdateAccountRequest{Balance: &newBaseline}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Balance.Equal(newBaseline)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.True(updated.Balance.Equal(newBaseline))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSetDefaultAccount_DelegatesAtomicToggle() {
	ctx := context.Background()
	account := suite.newAccount(domain.Checking, "0.00")

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("SetDefaultAccount", ctx, suite.testUserID, account.AccountID, suite.testUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.SetDefaultAccount(ctx, account.AccountID, suite.testUserID)

	suite.Require().NoError(err)
	suite.True(updated.IsDefault)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RepoError() {
	ctx := context.Background()
	account := suite.newAccount(domain.Checking, "0.00")
	expectedErr := fmt.Errorf("connection reset")

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, account.AccountID).Return(expectedErr).Once()

	err := suite.service.DeleteAccount(ctx, account.AccountID, suite.testUserID)

	suite.ErrorIs(err, expectedErr)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
