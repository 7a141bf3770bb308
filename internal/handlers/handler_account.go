package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvc
	now            func() time.Time
}

func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvc, now func() time.Time) *accountHandler {
	return &accountHandler{accountService: as, ledgerService: ls, now: now}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvc, now func() time.Time) {
	h := newAccountHandler(accountService, ledgerService, now)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/search", h.searchAccounts)
		accounts.POST("/payment", h.createPayment)
		accounts.POST("/transfer", h.createTransfer)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.GET("/:id/ledger", h.getAccountLedger)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a ledger account. Balance method is derived from the account type.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	respondOK(c, http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.SuccessResponse{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if !bindQuery(c, &params) {
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	respondOK(c, http.StatusOK, dto.ToListAccountResponse(accounts))
}

// searchAccounts godoc
// @Summary Search accounts
// @Description Filters by account type and matches name or phone.
// @Tags accounts
// @Produce  json
// @Param   accountType query string false "Account type"
// @Param   search query string false "Search term"
// @Param   activeOnly query bool false "Only active accounts"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/search [get]
func (h *accountHandler) searchAccounts(c *gin.Context) {
	var params dto.SearchAccountsParams
	if !bindQuery(c, &params) {
		return
	}
	accounts, err := h.accountService.SearchAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to search accounts")
		return
	}
	respondOK(c, http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("id")
	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	respondOK(c, http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates descriptive fields, the opening balance and the active flag.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	accountID := c.Param("id")
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	respondOK(c, http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountLedger godoc
// @Summary Account ledger
// @Description Opening balance, running rows and closing balance for an account over a range.
// @Tags ledgers
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   dateRange query string false "Preset: today, yesterday, thisWeek, lastWeek, thisMonth, lastMonth, thisYear"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SuccessResponse{data=domain.AccountLedger}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	r, ok := dateRange(c, params, h.now())
	if !ok {
		return
	}
	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		respondError(c, err, "Failed to build account ledger")
		return
	}
	respondOK(c, http.StatusOK, ledger)
}

// createPayment godoc
// @Summary Record a payment
// @Description receive: debit the money account, credit the party. give: the reverse.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/payment [post]
func (h *accountHandler) createPayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	txn, err := h.accountService.CreatePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment recorded", slog.String("transaction_id", txn.TransactionID))
	respondOK(c, http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createTransfer godoc
// @Summary Transfer between money accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer"
// @Success 201 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/transfer [post]
func (h *accountHandler) createTransfer(c *gin.Context) {
	var req dto.CreateTransferRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	txn, err := h.accountService.CreateTransfer(c.Request.Context(), req.TransferData, userID)
	if err != nil {
		respondError(c, err, "Failed to record transfer")
		return
	}
	respondOK(c, http.StatusCreated, dto.ToTransactionResponse(txn))
}
