package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"txnledger/internal/dto"
	"txnledger/internal/errors"
	"txnledger/internal/middleware"
	"txnledger/internal/models"
	"txnledger/internal/repositories"
	"txnledger/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo     *echo.Echo
	ctrl     *gomock.Controller
	mockRepo *repository_mocks.MockTransactionRepositoryInterface
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)

	handler := NewTransactionHandler(s.mockRepo)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.echo.HTTPErrorHandler = middleware.NewHTTPErrorHandler(false)

	api := s.echo.Group("/api")
	api.POST("/transactions", handler.CreateTransaction)
	api.GET("/transactions", handler.ListTransactions)
	api.GET("/transactions/:id", handler.GetTransaction)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// request drives a full request through the router and error handler
func (s *TransactionHandlerTestSuite) request(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *TransactionHandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// Create tests

func (s *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	s.mockRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(txn *models.Transaction) error {
			txn.ID = uuid.New()
			return nil
		})

	rec := s.request(http.MethodPost, "/api/transactions",
		`{"amount": 100.5, "type": "credit"}`)

	s.Equal(http.StatusCreated, rec.Code)

	var resp struct {
		Status string                  `json:"status"`
		Data   dto.TransactionResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("success", resp.Status)
	s.NotEqual(uuid.Nil, resp.Data.ID)
	s.Equal("100.50", resp.Data.Amount)
	s.Equal("credit", resp.Data.Type)
	s.False(resp.Data.Timestamp.IsZero())
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_ExplicitTimestamp() {
	timestamp := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

	s.mockRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(txn *models.Transaction) error {
			s.True(txn.Timestamp.Equal(timestamp))
			txn.ID = uuid.New()
			return nil
		})

	rec := s.request(http.MethodPost, "/api/transactions",
		`{"amount": 20, "type": "debit", "timestamp": "2025-03-15T09:30:00Z"}`)

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_MalformedBody() {
	rec := s.request(http.MethodPost, "/api/transactions", `{"amount": `)

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decodeError(rec)
	s.Equal("error", resp.Status)
	s.Equal(string(errors.CodeValidationError), resp.Code)
	s.Contains(resp.Details, "body: must be valid JSON")
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrors() {
	rec := s.request(http.MethodPost, "/api/transactions",
		`{"amount": -5, "type": "transfer"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeValidationError), resp.Code)
	s.Contains(resp.Details, "amount: must be greater than 0")
	s.Contains(resp.Details, "type: must be either credit or debit")
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_InvalidTimestamp() {
	rec := s.request(http.MethodPost, "/api/transactions",
		`{"amount": 10, "type": "credit", "timestamp": "yesterday"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeValidationError), resp.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_DatabaseError() {
	s.mockRepo.EXPECT().
		Create(gomock.Any()).
		Return(repositories.ErrTransactionNotFound)

	rec := s.request(http.MethodPost, "/api/transactions",
		`{"amount": 10, "type": "credit"}`)

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeDatabaseError), resp.Code)
}

// Get tests

func (s *TransactionHandlerTestSuite) TestGetTransaction_Success() {
	id := uuid.New()
	timestamp := time.Now().UTC()

	s.mockRepo.EXPECT().
		GetByID(id).
		Return(&models.Transaction{
			ID:        id,
			Amount:    decimal.NewFromFloat(42.10),
			Type:      models.TransactionTypeDebit,
			Timestamp: timestamp,
		}, nil)

	rec := s.request(http.MethodGet, "/api/transactions/"+id.String(), "")

	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Status string                  `json:"status"`
		Data   dto.TransactionResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("success", resp.Status)
	s.Equal(id, resp.Data.ID)
	s.Equal("42.10", resp.Data.Amount)
}

func (s *TransactionHandlerTestSuite) TestGetTransaction_InvalidID() {
	rec := s.request(http.MethodGet, "/api/transactions/not-a-uuid", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeValidationError), resp.Code)
	s.Contains(resp.Details, "id: must be a valid UUID")
}

func (s *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	id := uuid.New()

	s.mockRepo.EXPECT().
		GetByID(id).
		Return(nil, repositories.ErrTransactionNotFound)

	rec := s.request(http.MethodGet, "/api/transactions/"+id.String(), "")

	s.Equal(http.StatusNotFound, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeNotFound), resp.Code)
	s.Equal("Transaction not found", resp.Message)
}

// List tests

func (s *TransactionHandlerTestSuite) TestListTransactions_Defaults() {
	var captured models.TransactionQuery

	s.mockRepo.EXPECT().
		List(gomock.Any()).
		DoAndReturn(func(query models.TransactionQuery) ([]models.Transaction, int64, error) {
			captured = query
			return []models.Transaction{
				{ID: uuid.New(), Amount: decimal.NewFromInt(10), Type: "credit", Timestamp: time.Now().UTC()},
			}, 21, nil
		})

	rec := s.request(http.MethodGet, "/api/transactions", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, captured.Page)
	s.Equal(10, captured.Limit)
	s.Equal(models.SortByTimestamp, captured.SortBy)
	s.Equal(models.SortOrderDesc, captured.SortOrder)

	var resp struct {
		Status     string                    `json:"status"`
		Data       []dto.TransactionResponse `json:"data"`
		Pagination *dto.Pagination           `json:"pagination"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("success", resp.Status)
	s.Len(resp.Data, 1)
	s.Require().NotNil(resp.Pagination)
	s.Equal(int64(21), resp.Pagination.TotalItems)
	s.Equal(3, resp.Pagination.TotalPages)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_FiltersForwarded() {
	var captured models.TransactionQuery

	s.mockRepo.EXPECT().
		List(gomock.Any()).
		DoAndReturn(func(query models.TransactionQuery) ([]models.Transaction, int64, error) {
			captured = query
			return []models.Transaction{}, 0, nil
		})

	rec := s.request(http.MethodGet,
		"/api/transactions?page=2&limit=5&sortBy=amount&sortOrder=asc&type=debit"+
			"&startDate=2025-01-01T00:00:00Z&minAmount=9.99", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(2, captured.Page)
	s.Equal(5, captured.Limit)
	s.Equal(models.SortByAmount, captured.SortBy)
	s.Equal(models.SortOrderAsc, captured.SortOrder)
	s.Equal("debit", captured.Type)
	s.Require().NotNil(captured.StartDate)
	s.Equal(2025, captured.StartDate.Year())
	s.Require().NotNil(captured.MinAmount)
	s.True(captured.MinAmount.Equal(decimal.RequireFromString("9.99")))
	s.Nil(captured.EndDate)
	s.Nil(captured.MaxAmount)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_LimitCapped() {
	s.mockRepo.EXPECT().
		List(gomock.Any()).
		DoAndReturn(func(query models.TransactionQuery) ([]models.Transaction, int64, error) {
			s.Equal(models.MaxLimit, query.Limit)
			return []models.Transaction{}, 0, nil
		})

	rec := s.request(http.MethodGet, "/api/transactions?limit=500", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_AllInvalidParamsReported() {
	rec := s.request(http.MethodGet,
		"/api/transactions?page=0&sortBy=balance&type=transfer", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeValidationError), resp.Code)
	s.Len(resp.Details, 3)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_DatabaseError() {
	s.mockRepo.EXPECT().
		List(gomock.Any()).
		Return(nil, int64(0), errors.New(errors.CodeDatabaseError))

	rec := s.request(http.MethodGet, "/api/transactions", "")

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	resp := s.decodeError(rec)
	s.Equal(string(errors.CodeDatabaseError), resp.Code)
}
