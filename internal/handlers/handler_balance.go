package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
	"github.com/brewpoints/cafe_ledger_app/internal/utils"
)

type BalanceHandler struct {
	balanceSvc portssvc.BalanceSvcFacade
}

// NewBalanceHandler creates the handler for balance reads.
func NewBalanceHandler(balanceSvc portssvc.BalanceSvcFacade) *BalanceHandler {
	return &BalanceHandler{balanceSvc: balanceSvc}
}

// GetBalance godoc
// @Summary Get a customer's wallet balance
// @Description Returns the customer's current liability balance. Unknown customers hold zero.
// @Tags Balances
// @Produce json
// @Param userID path string true "Customer ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /balances/{userID} [get]
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	balance, err := h.balanceSvc.GetCustomerBalance(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:           balance.UserID,
		BalanceMinor:     balance.BalanceMinor,
		BalanceFormatted: utils.FormatMinorUnits(balance.BalanceMinor),
		UpdatedAt:        balance.UpdatedAt,
	})
}
