package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/utils/daterange"
	"github.com/gin-gonic/gin"
)

type dayBookHandler struct {
	dayBookService portssvc.DayBookSvcFacade
	now            func() time.Time
}

// RegisterDayBookRoutes registers the day book report and voucher entry routes.
func RegisterDayBookRoutes(rg *gin.RouterGroup, dayBookService portssvc.DayBookSvcFacade, now func() time.Time) {
	h := &dayBookHandler{dayBookService: dayBookService, now: now}

	daybook := rg.Group("/daybook")
	{
		daybook.GET("", h.getDayBook)
		daybook.GET("/report", h.getDayBookReport)
		daybook.POST("/collection", h.createCollection)
		daybook.POST("/transaction", h.createJournalTransaction)
		daybook.POST("/expense", h.createExpense)
	}
}

// getDayBook godoc
// @Summary Day book for one day
// @Description Voucher rows, day total and cash in hand at the start and end of the day.
// @Tags daybook
// @Produce  json
// @Param   date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} dto.SuccessResponse{data=domain.DayBook}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /daybook [get]
func (h *dayBookHandler) getDayBook(c *gin.Context) {
	var params dto.DayBookParams
	if !bindQuery(c, &params) {
		return
	}
	day := h.now()
	if params.Date != "" {
		parsed, err := daterange.ParseDate(params.Date)
		if err != nil {
			respondError(c, err, "Invalid date")
			return
		}
		day = parsed
	}

	book, err := h.dayBookService.GetDayBook(c.Request.Context(), day)
	if err != nil {
		respondError(c, err, "Failed to build day book")
		return
	}
	respondOK(c, http.StatusOK, book)
}

// getDayBookReport godoc
// @Summary Day book report over a range
// @Tags daybook
// @Produce  json
// @Param   dateRange query string false "Preset"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=[]domain.DayBookRow}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /daybook/report [get]
func (h *dayBookHandler) getDayBookReport(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	r, ok := dateRange(c, params, h.now())
	if !ok {
		return
	}
	rows, err := h.dayBookService.GetDayBookReport(c.Request.Context(), r)
	if err != nil {
		respondError(c, err, "Failed to build day book report")
		return
	}
	respondOK(c, http.StatusOK, rows)
}

// createCollection godoc
// @Summary Record a customer collection
// @Tags daybook
// @Accept  json
// @Produce  json
// @Param   collection body dto.CreateCollectionRequest true "Collection"
// @Success 201 {object} dto.SuccessResponse{data=domain.Collection}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /daybook/collection [post]
func (h *dayBookHandler) createCollection(c *gin.Context) {
	var req dto.CreateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	collection, err := h.dayBookService.CreateCollection(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record collection")
		return
	}
	respondOK(c, http.StatusCreated, collection)
}

// createJournalTransaction godoc
// @Summary Record a journal entry
// @Tags daybook
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateJournalTransactionRequest true "Journal entry"
// @Success 201 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /daybook/transaction [post]
func (h *dayBookHandler) createJournalTransaction(c *gin.Context) {
	var req dto.CreateJournalTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	txn, err := h.dayBookService.CreateJournalTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record journal entry")
		return
	}
	respondOK(c, http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createExpense godoc
// @Summary Record an expense
// @Tags daybook
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.SuccessResponse{data=domain.ExpenseVoucher}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /daybook/expense [post]
func (h *dayBookHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	expense, err := h.dayBookService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}
	respondOK(c, http.StatusCreated, expense)
}
