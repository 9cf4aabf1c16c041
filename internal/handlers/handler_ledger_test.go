package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
	"github.com/brewpoints/cafe_ledger_app/internal/handlers"
)

// --- Mock LedgerSvcFacade ---
type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) Topup(ctx context.Context, req dto.TopupRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, req, idempotencyKey, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerSvc) Charge(ctx context.Context, req dto.ChargeRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, req, idempotencyKey, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerSvc) Bonus(ctx context.Context, req dto.BonusRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, req, idempotencyKey, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerSvc) Reverse(ctx context.Context, transactionID string, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, transactionID, idempotencyKey, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerSvc) GetTransaction(ctx context.Context, transactionID string) (*domain.LedgerTransaction, []domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Get(1).([]domain.LedgerEntry), args.Error(2)
}

func (m *MockLedgerSvc) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	mockSvc *MockLedgerSvc
	router  *gin.Engine
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockSvc = new(MockLedgerSvc)
	handler := handlers.NewLedgerHandler(suite.mockSvc)

	suite.router = gin.New()
	ledger := suite.router.Group("/api/v1/ledger")
	ledger.POST("/topup", handler.Topup)
	ledger.POST("/charge", handler.Charge)
	ledger.POST("/bonus", handler.Bonus)
	ledger.GET("/transactions", handler.ListTransactions)
	ledger.GET("/transactions/:txID", handler.GetTransaction)
	ledger.POST("/transactions/:txID/reverse", handler.Reverse)
}

func (suite *LedgerHandlerTestSuite) performJSON(method, path string, body any, idempotencyKey string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestTopup_Created() {
	key := uuid.NewString()
	txn := &domain.LedgerTransaction{TransactionID: uuid.NewString(), Type: domain.Topup}

	suite.mockSvc.On("Topup", mock.Anything, dto.TopupRequest{UserID: "user-1", AmountMinor: 500}, key, "").
		Return(txn, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/ledger/topup",
		gin.H{"userID": "user-1", "amountMinor": 500}, key)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionCreatedResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.TxID)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTopup_MissingIdempotencyKey() {
	w := suite.performJSON(http.MethodPost, "/api/v1/ledger/topup",
		gin.H{"userID": "user-1", "amountMinor": 500}, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_FAILED", suite.decodeError(w).Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "Topup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestTopup_InvalidBody() {
	w := suite.performJSON(http.MethodPost, "/api/v1/ledger/topup",
		gin.H{"amountMinor": -5}, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_FAILED", suite.decodeError(w).Code)
}

func (suite *LedgerHandlerTestSuite) TestCharge_InsufficientFunds() {
	key := uuid.NewString()
	suite.mockSvc.On("Charge", mock.Anything, mock.AnythingOfType("dto.ChargeRequest"), key, "").
		Return(nil, fmt.Errorf("%w: balance too low", apperrors.ErrInsufficientFunds)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/ledger/charge",
		gin.H{"userID": "user-1", "amountMinor": 9000}, key)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("INSUFFICIENT_FUNDS", suite.decodeError(w).Code)
}

func (suite *LedgerHandlerTestSuite) TestBonus_MissingReason() {
	w := suite.performJSON(http.MethodPost, "/api/v1/ledger/bonus",
		gin.H{"userID": "user-1", "amountMinor": 200}, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "Bonus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestReverse_AlreadyReversed() {
	key := uuid.NewString()
	txnID := uuid.NewString()
	suite.mockSvc.On("Reverse", mock.Anything, txnID, key, "").
		Return(nil, fmt.Errorf("%w: already reversed", apperrors.ErrReversalExists)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/ledger/transactions/"+txnID+"/reverse", nil, key)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("REVERSAL_ALREADY_EXISTS", suite.decodeError(w).Code)
}

func (suite *LedgerHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockSvc.On("GetTransaction", mock.Anything, txnID).
		Return(nil, nil, fmt.Errorf("%w: %s", apperrors.ErrTxNotFound, txnID)).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/ledger/transactions/"+txnID, nil, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("TX_NOT_FOUND", suite.decodeError(w).Code)
}

func (suite *LedgerHandlerTestSuite) TestGetTransaction_OKWithEntries() {
	txnID := uuid.NewString()
	txn := &domain.LedgerTransaction{TransactionID: txnID, Type: domain.Charge, CreatedAt: time.Now().UTC()}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), TransactionID: txnID, AccountCode: domain.AccountCustomerFunds, UserID: "user-1", Side: domain.Debit, AmountMinor: 300},
		{EntryID: uuid.NewString(), TransactionID: txnID, AccountCode: domain.AccountRevenue, Side: domain.Credit, AmountMinor: 300},
	}
	suite.mockSvc.On("GetTransaction", mock.Anything, txnID).Return(txn, entries, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/ledger/transactions/"+txnID, nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txnID, resp.TransactionID)
	suite.Require().Len(resp.Entries, 2)
	suite.Equal("3.00", resp.Entries[0].AmountFormatted)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_PassesQueryParams() {
	userID := "user-1"
	token := "cursor"
	expected := dto.ListTransactionsParams{UserID: &userID, Limit: 5, NextToken: &token}

	suite.mockSvc.On("ListTransactions", mock.Anything, expected).
		Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/ledger/transactions?userID=user-1&limit=5&nextToken=cursor", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_BadLimit() {
	w := suite.performJSON(http.MethodGet, "/api/v1/ledger/transactions?limit=banana", nil, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_FAILED", suite.decodeError(w).Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
