package services_test

import (
	"context"
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

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo       *MockBudgetRepository
	mockContributionRepo *MockContributionRepository
	service              portssvc.BudgetSvcFacade

	testUserID string
	testGoal   domain.Budget
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockContributionRepo = new(MockContributionRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockContributionRepo)

	suite.testUserID = uuid.NewString()
	suite.testGoal = domain.Budget{
		BudgetID:  uuid.NewString(),
		UserID:    suite.testUserID,
		Category:  "Vacation",
		Amount:    decimal.RequireFromString("5000.00"),
		Period:    "yearly",
		Type:      domain.BudgetGoal,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(1, 0, 0),
	}
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:  "Groceries",
		Amount:    decimal.RequireFromString("400.00"),
		Period:    "monthly",
		Type:      domain.BudgetExpense,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(0, 1, 0),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	created, err := suite.service.CreateBudget(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.BudgetID)
	suite.Equal(domain.BudgetExpense, created.Type)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:  "Groceries",
		Amount:    decimal.RequireFromString("400.00"),
		Period:    "monthly",
		Type:      domain.BudgetExpense,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(0, -1, 0),
	}

	_, err := suite.service.CreateBudget(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget")
}

func (suite *BudgetServiceTestSuite) TestGetSavedAmount_SumsContributions() {
	ctx := context.Background()
	contributions := []domain.Contribution{
		{ContributionID: uuid.NewString(), BudgetID: suite.testGoal.BudgetID, Amount: decimal.RequireFromString("100.00")},
		{ContributionID: uuid.NewString(), BudgetID: suite.testGoal.BudgetID, Amount: decimal.RequireFromString("250.50")},
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, suite.testGoal.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByBudget", ctx, suite.testGoal.BudgetID).Return(contributions, nil).Once()

	saved, err := suite.service.GetSavedAmount(ctx, suite.testGoal.BudgetID, suite.testUserID)

	suite.Require().NoError(err)
	suite.True(saved.Equal(decimal.RequireFromString("350.50")), "expected 350.50, got %s", saved)
}

func (suite *BudgetServiceTestSuite) TestGetSavedAmount_OtherUsersBudgetHidden() {
	ctx := context.Background()
	foreign := suite.testGoal
	foreign.UserID = uuid.NewString()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, foreign.BudgetID).Return(&foreign, nil).Once()

	_, err := suite.service.GetSavedAmount(ctx, foreign.BudgetID, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "ListContributionsByBudget")
}

func (suite *BudgetServiceTestSuite) TestListBudgets_DerivesGoalTotals() {
	ctx := context.Background()
	expenseBudget := domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   suite.testUserID,
		Category: "Groceries",
		Amount:   decimal.RequireFromString("400.00"),
		Type:     domain.BudgetExpense,
	}
	contributions := []domain.Contribution{
		{ContributionID: uuid.NewString(), BudgetID: suite.testGoal.BudgetID, Amount: decimal.RequireFromString("75.00")},
	}

	suite.mockBudgetRepo.On("ListBudgetsByUser", ctx, suite.testUserID).
		Return([]domain.Budget{suite.testGoal, expenseBudget}, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByBudget", ctx, suite.testGoal.BudgetID).Return(contributions, nil).Once()

	resp, err := suite.service.ListBudgets(ctx, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Budgets, 2)
	suite.True(resp.Budgets[0].SavedAmount.Equal(decimal.RequireFromString("75.00")))
	suite.True(resp.Budgets[1].SavedAmount.IsZero())
	// Only the goal triggers a contribution fetch.
	suite.mockContributionRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_GoalWithContributionsRefused() {
	ctx := context.Background()
	contributions := []domain.Contribution{
		{ContributionID: uuid.NewString(), BudgetID: suite.testGoal.BudgetID, Amount: decimal.RequireFromString("75.00")},
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, suite.testGoal.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByBudget", ctx, suite.testGoal.BudgetID).Return(contributions, nil).Once()

	err := suite.service.DeleteBudget(ctx, suite.testGoal.BudgetID, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "DeleteBudget")
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_EmptyGoalSucceeds() {
	ctx := context.Background()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, suite.testGoal.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockContributionRepo.On("ListContributionsByBudget", ctx, suite.testGoal.BudgetID).Return([]domain.Contribution{}, nil).Once()
	suite.mockBudgetRepo.On("DeleteBudget", ctx, suite.testGoal.BudgetID).Return(nil).Once()

	err := suite.service.DeleteBudget(ctx, suite.testGoal.BudgetID, suite.testUserID)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_Success() {
	ctx := context.Background()
	newAmount := decimal.RequireFromString("6000.00")
	req := dto.UpdateBudgetRequest{Amount: &newAmount}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, suite.testGoal.BudgetID).Return(&suite.testGoal, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Amount.Equal(newAmount)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.testGoal.BudgetID, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
