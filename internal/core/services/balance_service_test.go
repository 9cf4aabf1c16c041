package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo *MockBalanceRepository
	service         portssvc.BalanceSvcFacade
	userID          string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.service = services.NewBalanceService(suite.mockBalanceRepo)
	suite.userID = uuid.NewString()
}

func (suite *BalanceServiceTestSuite) TestGetCustomerBalance_Existing() {
	ctx := context.Background()
	stored := &domain.AccountBalance{
		AccountCode:  domain.AccountCustomerFunds,
		UserID:       suite.userID,
		BalanceMinor: 1250,
		UpdatedAt:    time.Now().UTC(),
	}

	suite.mockBalanceRepo.On("FindBalance", ctx, domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: suite.userID}).
		Return(stored, nil).Once()

	balance, err := suite.service.GetCustomerBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(1250), balance.BalanceMinor)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetCustomerBalance_UnknownCustomerIsZero() {
	ctx := context.Background()

	suite.mockBalanceRepo.On("FindBalance", ctx, domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: suite.userID}).
		Return(nil, nil).Once()

	balance, err := suite.service.GetCustomerBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Equal(int64(0), balance.BalanceMinor)
	suite.Equal(suite.userID, balance.UserID)
}

func (suite *BalanceServiceTestSuite) TestGetCustomerBalance_RepoError() {
	ctx := context.Background()
	repoErr := errors.New("connection reset")

	suite.mockBalanceRepo.On("FindBalance", ctx, domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: suite.userID}).
		Return(nil, repoErr).Once()

	_, err := suite.service.GetCustomerBalance(ctx, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func (suite *BalanceServiceTestSuite) TestRebuildBalances() {
	ctx := context.Background()

	suite.mockBalanceRepo.On("RebuildBalances", ctx).Return(int64(42), nil).Once()

	rows, err := suite.service.RebuildBalances(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(42), rows)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
