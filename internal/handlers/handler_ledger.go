package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
	now           func() time.Time
}

// RegisterLedgerRoutes registers the sales, cash and bank ledger views.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc, now func() time.Time) {
	h := &ledgerHandler{ledgerService: ledgerService, now: now}

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("/sales", h.getSalesLedger)
		ledgers.GET("/cash", h.getCashLedger)
		ledgers.GET("/bank", h.getBankLedger)
	}
}

// getSalesLedger godoc
// @Summary Sales ledger
// @Description Sales account ledger with credits shown as increases.
// @Tags ledgers
// @Produce  json
// @Param   dateRange query string false "Preset"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=domain.AccountLedger}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ledgers/sales [get]
func (h *ledgerHandler) getSalesLedger(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	r, ok := dateRange(c, params, h.now())
	if !ok {
		return
	}
	ledger, err := h.ledgerService.GetSalesLedger(c.Request.Context(), r)
	if err != nil {
		respondError(c, err, "Failed to build sales ledger")
		return
	}
	respondOK(c, http.StatusOK, ledger)
}

// getCashLedger godoc
// @Summary Cash ledger
// @Tags ledgers
// @Produce  json
// @Param   dateRange query string false "Preset"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=domain.AccountLedger}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ledgers/cash [get]
func (h *ledgerHandler) getCashLedger(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	r, ok := dateRange(c, params, h.now())
	if !ok {
		return
	}
	ledger, err := h.ledgerService.GetCashLedger(c.Request.Context(), r)
	if err != nil {
		respondError(c, err, "Failed to build cash ledger")
		return
	}
	respondOK(c, http.StatusOK, ledger)
}

// getBankLedger godoc
// @Summary Bank ledger
// @Description Uses the first active bank account when accountId is omitted.
// @Tags ledgers
// @Produce  json
// @Param   accountId query string false "Bank account ID"
// @Param   dateRange query string false "Preset"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=domain.AccountLedger}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ledgers/bank [get]
func (h *ledgerHandler) getBankLedger(c *gin.Context) {
	var params dto.BankLedgerParams
	if !bindQuery(c, &params) {
		return
	}
	r, ok := dateRange(c, params.DateRangeParams, h.now())
	if !ok {
		return
	}
	ledger, err := h.ledgerService.GetBankLedger(c.Request.Context(), params.AccountID, r)
	if err != nil {
		respondError(c, err, "Failed to build bank ledger")
		return
	}
	respondOK(c, http.StatusOK, ledger)
}
