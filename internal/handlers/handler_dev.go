package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
)

type DevHandler struct {
	balanceSvc portssvc.BalanceSvcFacade
	enabled    bool
}

// NewDevHandler creates the handler for dev-only operations. The flag is read
// once at startup; flipping it requires a restart.
func NewDevHandler(balanceSvc portssvc.BalanceSvcFacade, enabled bool) *DevHandler {
	return &DevHandler{balanceSvc: balanceSvc, enabled: enabled}
}

// RebuildBalances godoc
// @Summary Rebuild cached balances from the entry log
// @Description Dev-only. Recomputes every balance row by replaying the entry log. Returns 403 unless dev endpoints are enabled.
// @Tags Dev
// @Produce json
// @Success 200 {object} dto.RebuildBalancesResponse
// @Failure 403 {object} ErrorResponse "Dev endpoints disabled"
// @Security BearerAuth
// @Router /dev/rebuild-balances [post]
func (h *DevHandler) RebuildBalances(c *gin.Context) {
	if !h.enabled {
		respondError(c, apperrors.ErrForbiddenDevEndpoint)
		return
	}

	rows, err := h.balanceSvc.RebuildBalances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RebuildBalancesResponse{RowsRebuilt: rows})
}
