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

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockAccountSvc      *MockAccountSvc
	mockCategoryRepo    *MockCategoryRepository
	service             portssvc.TransactionSvcFacade

	testUserID  string
	testAccount domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountSvc)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTransactionRepo, suite.mockAccountSvc, suite.mockCategoryRepo)

	suite.testUserID = uuid.NewString()
	suite.testAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.testUserID,
		Name:        "Main Checking",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString("1000.00"),
	}
}

func (suite *TransactionServiceTestSuite) validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AccountID:       suite.testAccount.AccountID,
		Amount:          decimal.RequireFromString("42.50"),
		TransactionType: domain.Expense,
		Date:            time.Now().UTC(),
		Description:     "Groceries",
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockAccountSvc.On("GetAccountByID", ctx, req.AccountID, suite.testUserID).Return(&suite.testAccount, nil).Once()
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == req.AccountID &&
			txn.UserID == suite.testUserID &&
			txn.Amount.Equal(req.Amount) &&
			txn.TransactionType == domain.Expense
	})).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TransactionID)
	suite.Equal(suite.testUserID, created.CreatedBy)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Amount = decimal.RequireFromString("-5.00")

	_, err := suite.service.CreateTransaction(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TooManyFractionalDigits() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Amount = decimal.RequireFromString("10.123")

	_, err := suite.service.CreateTransaction(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownType() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.TransactionType = domain.TransactionType("TRANSFER")

	_, err := suite.service.CreateTransaction(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByID")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotOwned() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockAccountSvc.On("GetAccountByID", ctx, req.AccountID, suite.testUserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignCategoryHidden() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	categoryID := uuid.NewString()
	req.CategoryID = &categoryID

	foreignCategory := domain.Category{CategoryID: categoryID, UserID: uuid.NewString(), Name: "Food"}

	suite.mockAccountSvc.On("GetAccountByID", ctx, req.AccountID, suite.testUserID).Return(&suite.testAccount, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&foreignCategory, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_OtherUsersTransactionHidden() {
	ctx := context.Background()
	foreign := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          uuid.NewString(),
		AccountID:       uuid.NewString(),
		Amount:          decimal.RequireFromString("10.00"),
		TransactionType: domain.Income,
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, foreign.TransactionID).Return(&foreign, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, foreign.TransactionID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountValidated() {
	ctx := context.Background()
	existing := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.testUserID,
		AccountID:       suite.testAccount.AccountID,
		Amount:          decimal.RequireFromString("20.00"),
		TransactionType: domain.Expense,
	}
	badAmount := decimal.RequireFromString("0")
	req := dto.UpdateTransactionRequest{Amount: &badAmount}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, existing.TransactionID, req, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "UpdateTransaction")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	existing := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.testUserID,
		AccountID:       suite.testAccount.AccountID,
		Amount:          decimal.RequireFromString("20.00"),
		TransactionType: domain.Expense,
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	suite.mockTransactionRepo.On("DeleteTransaction", ctx, existing.TransactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, existing.TransactionID, suite.testUserID)

	suite.Require().NoError(err)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_OtherUsersTransactionHidden() {
	ctx := context.Background()
	foreign := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          uuid.NewString(),
		AccountID:       uuid.NewString(),
		Amount:          decimal.RequireFromString("20.00"),
		TransactionType: domain.Expense,
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, foreign.TransactionID).Return(&foreign, nil).Once()

	err := suite.service.DeleteTransaction(ctx, foreign.TransactionID, suite.testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
