package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
	"github.com/brewpoints/cafe_ledger_app/internal/utils"
)

// idempotencyKeyHeader carries the client-supplied key required on every
// money-moving request.
const idempotencyKeyHeader = "Idempotency-Key"

type LedgerHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewLedgerHandler creates the handler for the money-moving routes.
func NewLedgerHandler(ledgerSvc portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Topup godoc
// @Summary Fund a customer wallet
// @Description Records a counter top-up: debits cash, credits the customer's wallet.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client-supplied idempotency key"
// @Param topup body dto.TopupRequest true "Top-up details"
// @Success 201 {object} dto.TransactionCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/topup [post]
func (h *LedgerHandler) Topup(c *gin.Context) {
	var req dto.TopupRequest
	key, actorID, ok := h.bindMutation(c, &req)
	if !ok {
		return
	}

	txn, err := h.ledgerSvc.Topup(c.Request.Context(), req, key, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionCreatedResponse{TxID: txn.TransactionID})
}

// Charge godoc
// @Summary Charge a customer wallet
// @Description Spends wallet funds into revenue. Rejected when the balance cannot cover the amount.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client-supplied idempotency key"
// @Param charge body dto.ChargeRequest true "Charge details"
// @Success 201 {object} dto.TransactionCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /ledger/charge [post]
func (h *LedgerHandler) Charge(c *gin.Context) {
	var req dto.ChargeRequest
	key, actorID, ok := h.bindMutation(c, &req)
	if !ok {
		return
	}

	txn, err := h.ledgerSvc.Charge(c.Request.Context(), req, key, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionCreatedResponse{TxID: txn.TransactionID})
}

// Bonus godoc
// @Summary Grant a promotional bonus
// @Description Credits a customer wallet at the operator's expense.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client-supplied idempotency key"
// @Param bonus body dto.BonusRequest true "Bonus details"
// @Success 201 {object} dto.TransactionCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/bonus [post]
func (h *LedgerHandler) Bonus(c *gin.Context) {
	var req dto.BonusRequest
	key, actorID, ok := h.bindMutation(c, &req)
	if !ok {
		return
	}

	txn, err := h.ledgerSvc.Bonus(c.Request.Context(), req, key, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionCreatedResponse{TxID: txn.TransactionID})
}

// Reverse godoc
// @Summary Reverse a transaction
// @Description Appends a mirror transaction undoing the original's balance effect. Each transaction can be reversed once; reversals cannot be reversed.
// @Tags Ledger
// @Produce json
// @Param Idempotency-Key header string true "Client-supplied idempotency key"
// @Param txID path string true "Transaction ID to reverse"
// @Success 201 {object} dto.ReversalCreatedResponse
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 409 {object} ErrorResponse "Already reversed or not reversible"
// @Security BearerAuth
// @Router /ledger/transactions/{txID}/reverse [post]
func (h *LedgerHandler) Reverse(c *gin.Context) {
	key, ok := requireIdempotencyKey(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetActorIDFromContext(c)

	txn, err := h.ledgerSvc.Reverse(c.Request.Context(), c.Param("txID"), key, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReversalCreatedResponse{ReversalTxID: txn.TransactionID})
}

// GetTransaction godoc
// @Summary Get one transaction
// @Description Returns a transaction with its balanced entry pair.
// @Tags Ledger
// @Produce json
// @Param txID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/transactions/{txID} [get]
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	txn, entries, err := h.ledgerSvc.GetTransaction(c.Request.Context(), c.Param("txID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, entries, utils.FormatMinorUnits))
}

// ListTransactions godoc
// @Summary List transactions
// @Description Newest-first page of the ledger log, optionally filtered to one customer.
// @Tags Ledger
// @Produce json
// @Param userID query string false "Restrict to events touching this customer"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Malformed cursor or limit"
// @Security BearerAuth
// @Router /ledger/transactions [get]
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	params := dto.ListTransactionsParams{}
	if userID := c.Query("userID"); userID != "" {
		params.UserID = &userID
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			respondError(c, fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrValidation))
			return
		}
		params.Limit = limit
	}

	resp, err := h.ledgerSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// bindMutation handles the shared front half of every money-moving route:
// idempotency key, JSON body, acting user.
func (h *LedgerHandler) bindMutation(c *gin.Context, req any) (string, string, bool) {
	key, ok := requireIdempotencyKey(c)
	if !ok {
		return "", "", false
	}
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error()))
		return "", "", false
	}
	actorID, _ := middleware.GetActorIDFromContext(c)
	return key, actorID, true
}

func requireIdempotencyKey(c *gin.Context) (string, bool) {
	key := c.GetHeader(idempotencyKeyHeader)
	if key == "" {
		respondError(c, fmt.Errorf("%w: %s header is required", apperrors.ErrValidation, idempotencyKeyHeader))
		return "", false
	}
	return key, true
}
