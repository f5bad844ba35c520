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

type ContributionServiceTestSuite struct {
	suite.Suite
	mockContributionRepo *MockContributionRepository
	mockBudgetRepo       *MockBudgetRepository
	mockAccountSvc       *MockAccountSvc
	service              portssvc.ContributionSvcFacade

	testUserID  string
	testGoal    domain.Budget
	testAccount domain.Account
}

func (suite *ContributionServiceTestSuite) SetupTest() {
	suite.mockContributionRepo = new(MockContributionRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockAccountSvc = new(MockAccountSvc)
	suite.service = services.NewContributionService(suite.mockContributionRepo, suite.mockBudgetRepo, suite.mockAccountSvc)

	suite.testUserID = uuid.NewString()
	suite.testGoal = domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   suite.testUserID,
		Category: "Vacation",
		Amount:   decimal.RequireFromString("5000.00"),
		Type:     domain.BudgetGoal,
	}
	suite.testAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.testUserID,
		Name:        "Savings",
		AccountType: domain.Savings,
		Balance:     decimal.RequireFromString("2000.00"),
	}
}

func (suite *ContributionServiceTestSuite) validCreateRequest() dto.CreateContributionRequest {
	return dto.CreateContributionRequest{
		BudgetID:  suite.testGoal.BudgetID,
		AccountID: suite.testAccount.AccountID,
		Amount:    decimal.RequireFromString("150.00"),
		Date:      time.Now().UTC(),
		Method:    "manual",
	}
}

// --- Test Cases ---

func (suite *ContributionServiceTestSuite) TestCreateContribution_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, req.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, req.AccountID, suite.testUserID).Return(&suite.testAccount, nil).Once()
	suite.mockContributionRepo.On("SaveContribution", ctx, mock.MatchedBy(func(c domain.Contribution) bool {
		return c.BudgetID == req.BudgetID &&
			c.AccountID == req.AccountID &&
			c.UserID == suite.testUserID &&
			c.Amount.Equal(req.Amount)
	})).Return(nil).Once()

	created, err := suite.service.CreateContribution(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ContributionID)
	suite.mockContributionRepo.AssertExpectations(suite.T())
}

func (suite *ContributionServiceTestSuite) TestCreateContribution_NonGoalBudget() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	expenseBudget := suite.testGoal
	expenseBudget.Type = domain.BudgetExpense

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, req.BudgetID).Return(&expenseBudget, nil).Once()

	_, err := suite.service.CreateContribution(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SaveContribution")
}

func (suite *ContributionServiceTestSuite) TestCreateContribution_ForeignBudgetHidden() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	foreignGoal := suite.testGoal
	foreignGoal.UserID = uuid.NewString()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, req.BudgetID).Return(&foreignGoal, nil).Once()

	_, err := suite.service.CreateContribution(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SaveContribution")
}

func (suite *ContributionServiceTestSuite) TestCreateContribution_CreditAccountCannotFund() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	creditAccount := suite.testAccount
	creditAccount.AccountType = domain.Credit

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, req.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, req.AccountID, suite.testUserID).Return(&creditAccount, nil).Once()

	_, err := suite.service.CreateContribution(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SaveContribution")
}

func (suite *ContributionServiceTestSuite) TestCreateContribution_StorageFailure() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, req.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, req.AccountID, suite.testUserID).Return(&suite.testAccount, nil).Once()
	suite.mockContributionRepo.On("SaveContribution", ctx, mock.AnythingOfType("domain.Contribution")).
		Return(fmt.Errorf("commit failed")).Once()

	_, err := suite.service.CreateContribution(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrTransactionFailure)
}

func (suite *ContributionServiceTestSuite) TestDeleteContribution_Success() {
	ctx := context.Background()
	existing := domain.Contribution{
		ContributionID: uuid.NewString(),
		UserID:         suite.testUserID,
		BudgetID:       suite.testGoal.BudgetID,
		AccountID:      suite.testAccount.AccountID,
		Amount:         decimal.RequireFromString("150.00"),
	}

	suite.mockContributionRepo.On("FindContributionByID", ctx, existing.ContributionID).Return(&existing, nil).Once()
	suite.mockContributionRepo.On("DeleteContribution", ctx, existing.ContributionID).Return(nil).Once()

	err := suite.service.DeleteContribution(ctx, existing.ContributionID, suite.testUserID)

	suite.Require().NoError(err)
	suite.mockContributionRepo.AssertExpectations(suite.T())
}

func (suite *ContributionServiceTestSuite) TestDeleteContribution_OtherUsersContributionHidden() {
	ctx := context.Background()
	foreign := domain.Contribution{
		ContributionID: uuid.NewString(),
		UserID:         uuid.NewString(),
		BudgetID:       uuid.NewString(),
		AccountID:      uuid.NewString(),
		Amount:         decimal.RequireFromString("10.00"),
	}

	suite.mockContributionRepo.On("FindContributionByID", ctx, foreign.ContributionID).Return(&foreign, nil).Once()

	err := suite.service.DeleteContribution(ctx, foreign.ContributionID, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "DeleteContribution")
}

func (suite *ContributionServiceTestSuite) TestListContributionsByBudget_Success() {
	ctx := context.Background()
	contributions := []domain.Contribution{
		{ContributionID: uuid.NewString(), UserID: suite.testUserID, BudgetID: suite.testGoal.BudgetID, Amount: decimal.RequireFromString("100.00")},
		{ContributionID: uuid.NewString(), UserID: suite.testUserID, BudgetID: suite.testGoal.BudgetID, Amount: decimal.RequireFromString("50.00")},
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, suite.testGoal.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByBudget", ctx, suite.testGoal.BudgetID).Return(contributions, nil).Once()

	listed, err := suite.service.ListContributionsByBudget(ctx, suite.testGoal.BudgetID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Len(listed, 2)
}

func TestContributionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContributionServiceTestSuite))
}
