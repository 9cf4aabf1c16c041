package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
)

const dateLayout = "2006-01-02"

type TrialBalanceHandler struct {
	trialBalanceSvc portssvc.TrialBalanceSvcFacade
}

// NewTrialBalanceHandler creates the handler for reconciliation routes.
func NewTrialBalanceHandler(trialBalanceSvc portssvc.TrialBalanceSvcFacade) *TrialBalanceHandler {
	return &TrialBalanceHandler{trialBalanceSvc: trialBalanceSvc}
}

// Run godoc
// @Summary Run a trial balance
// @Description Sums all debits and credits (optionally for one day), stores the snapshot, and reports OK or MISMATCH.
// @Tags Reconciliation
// @Accept json
// @Produce json
// @Param request body dto.RunTrialBalanceRequest false "Optional as-of date (YYYY-MM-DD); omit for the whole ledger"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconciliation/trial-balance [post]
func (h *TrialBalanceHandler) Run(c *gin.Context) {
	var req dto.RunTrialBalanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error()))
			return
		}
	}

	var asOf *time.Time
	if req.AsOfDate != "" {
		parsed, err := time.Parse(dateLayout, req.AsOfDate)
		if err != nil {
			respondError(c, fmt.Errorf("%w: asOfDate must use the %s layout", apperrors.ErrValidation, dateLayout))
			return
		}
		asOf = &parsed
	}

	snapshot, err := h.trialBalanceSvc.Run(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrialBalanceResponse(snapshot))
}

// GetSnapshot godoc
// @Summary Get a stored trial balance snapshot
// @Tags Reconciliation
// @Produce json
// @Param date path string true "Snapshot date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconciliation/trial-balance/{date} [get]
func (h *TrialBalanceHandler) GetSnapshot(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: date must use the %s layout", apperrors.ErrValidation, dateLayout))
		return
	}

	snapshot, err := h.trialBalanceSvc.GetSnapshot(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrialBalanceResponse(snapshot))
}

func toTrialBalanceResponse(s *domain.TrialBalanceSnapshot) dto.TrialBalanceResponse {
	return dto.TrialBalanceResponse{
		AsOfDate:       s.AsOfDate.Format(dateLayout),
		Status:         string(s.Status),
		SumDebitMinor:  s.SumDebitMinor,
		SumCreditMinor: s.SumCreditMinor,
		DeltaMinor:     s.DeltaMinor,
		RanAt:          s.RanAt,
	}
}
