package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/handlers"
	"github.com/dairyworks/farm_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handler-test-secret"

var registerValidators sync.Once

func setupValidators() {
	registerValidators.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := dto.RegisterDecimalValidators(v); err != nil {
				panic(err)
			}
		}
	})
}

func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(fmt.Sprintf("failed to sign test token: %v", err))
	}
	return signed
}

func newTestRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	setupValidators()
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: testJWTSecret, IsProduction: true}, services)
	return r
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) SearchAccounts(ctx context.Context, params dto.SearchAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockAccountService) CreateTransfer(ctx context.Context, req dto.TransferData, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) OpeningBalance(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, cutoff)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) GetAccountLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error) {
	args := m.Called(ctx, accountID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerService) GetSalesLedger(ctx context.Context, r domain.DateRange) (*domain.AccountLedger, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerService) GetCashLedger(ctx context.Context, r domain.DateRange) (*domain.AccountLedger, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerService) GetBankLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error) {
	args := m.Called(ctx, accountID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

// --- Test Suite Setup ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockAccountService
	mockLedger  *MockLedgerService
	testUserID  string
	token       string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockAccountService)
	suite.mockLedger = new(MockLedgerService)
	suite.testUserID = "user-7"
	suite.token = generateTestToken(suite.testUserID)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Account: suite.mockService,
		Ledger:  suite.mockLedger,
	})
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func (suite *AccountHandlerTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		AccountType:    domain.CustomerAccount,
		AccountName:    "Ravi",
		InitialBalance: decimal.NewFromInt(150),
	}
	created := &domain.Account{
		AccountID:      "acc-1",
		AccountType:    domain.CustomerAccount,
		AccountName:    "Ravi",
		CustomerName:   "Ravi",
		InitialBalance: decimal.NewFromInt(150),
		Balance:        decimal.NewFromInt(150),
		BalanceMethod:  domain.Perpetual,
		IsActive:       true,
	}
	suite.mockService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.AccountType == domain.CustomerAccount && req.AccountName == "Ravi" && req.InitialBalance.Equal(decimal.NewFromInt(150))
	}), suite.testUserID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", reqBody, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp struct {
		Success bool                `json:"success"`
		Data    dto.AccountResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("acc-1", resp.Data.AccountID)
	suite.Equal("Ravi", resp.Data.DisplayName)
	suite.True(resp.Data.Balance.Equal(decimal.NewFromInt(150)))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindError() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{"accountType": "ASSET"}, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("Invalid request format", resp.Message)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Unauthorized() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{AccountType: domain.CashAccount, AccountName: "Till"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ServiceValidationError() {
	suite.mockService.On("CreateAccount", mock.Anything, mock.Anything, suite.testUserID).
		Return(nil, fmt.Errorf("%w: a name is required", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{AccountType: domain.CashAccount}, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Failed to create account", resp.Message)
	suite.Contains(resp.Error, "a name is required")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockService.On("GetAccountByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: account missing", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", nil, suite.token)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_InternalErrorHidesDetail() {
	suite.mockService.On("GetAccountByID", mock.Anything, "acc-1").
		Return(nil, fmt.Errorf("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", nil, suite.token)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Error)
}

func (suite *AccountHandlerTestSuite) TestSearchAccounts_PassesFilters() {
	suite.mockService.On("SearchAccounts", mock.Anything, dto.SearchAccountsParams{
		AccountType: domain.CustomerAccount,
		Search:      "ravi",
		ActiveOnly:  true,
		Limit:       50,
	}).Return([]domain.Account{{AccountID: "acc-1", AccountType: domain.CustomerAccount, AccountName: "Ravi"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/search?accountType=CUSTOMER&search=ravi&activeOnly=true", nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreatePayment_RejectsZeroAmount() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/payment", map[string]any{
		"accountId":        "acc-1",
		"paymentAccountId": "acc-cash",
		"amount":           0,
		"paymentType":      "receive",
	}, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateTransfer_Success() {
	txn := &domain.Transaction{
		TransactionID:   "txn-000123",
		DebitAccountID:  "acc-bank",
		CreditAccountID: "acc-cash",
		Amount:          decimal.NewFromInt(600),
		Description:     "Fund transfer",
		Ref:             &domain.DocumentRef{Kind: domain.TransferRef, ID: "tr-1"},
	}
	suite.mockService.On("CreateTransfer", mock.Anything, mock.MatchedBy(func(req dto.TransferData) bool {
		return req.FromAccountID == "acc-cash" && req.ToAccountID == "acc-bank"
	}), suite.testUserID).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer", map[string]any{
		"transferData": map[string]any{"fromAccountId": "acc-cash", "toAccountId": "acc-bank", "amount": 600},
	}, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp struct {
		Data dto.TransactionResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.VoucherContra, resp.Data.VoucherType)
	suite.Equal("CON-000123", resp.Data.VoucherNumber)
}

func (suite *AccountHandlerTestSuite) TestGetAccountLedger_ExplicitRange() {
	want := domain.DateRange{
		Start: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 31, 23, 59, 59, 999999999, time.UTC),
	}
	suite.mockLedger.On("GetAccountLedger", mock.Anything, "acc-1", mock.MatchedBy(func(r domain.DateRange) bool {
		return r.Start.Equal(want.Start) && r.End.Equal(want.End)
	})).Return(&domain.AccountLedger{AccountID: "acc-1"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/ledger?startDate=2026-03-01&endDate=2026-03-31", nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountLedger_BadPreset() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/ledger?dateRange=fortnight", nil, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "GetAccountLedger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}
