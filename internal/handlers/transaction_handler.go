package handlers

import (
	"net/http"
	"strconv"
	"time"

	"txnledger/internal/dto"
	"txnledger/internal/errors"
	"txnledger/internal/models"
	"txnledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	transactionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_created_total",
			Help: "Total number of transactions created by type",
		},
		[]string{"type"},
	)
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionRepo repositories.TransactionRepositoryInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
	}
}

// CreateTransaction records a new transaction
// @Summary Create transaction
// @Description Record a new credit or debit transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction to create"
// @Success 201 {object} dto.SuccessResponse "Created transaction"
// @Failure 400 {object} errors.Response "VALIDATION_ERROR - Invalid request body"
// @Failure 503 {object} errors.Response "DATABASE_ERROR - Datastore unavailable"
// @Router /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.CodeValidationError,
			errors.WithDetails("body: must be valid JSON"))
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return SendError(c, errors.CodeValidationError,
				errors.WithDetails("timestamp: must be a valid ISO-8601 timestamp"))
		}
		timestamp = parsed.UTC()
	}

	transaction := &models.Transaction{
		Amount:    decimal.NewFromFloat(req.Amount),
		Type:      req.Type,
		Timestamp: timestamp,
	}

	if err := h.transactionRepo.Create(transaction); err != nil {
		return SendDatabaseError(c, err)
	}

	transactionsCreatedTotal.WithLabelValues(transaction.Type).Inc()

	return c.JSON(http.StatusCreated, dto.NewSuccessResponse(toTransactionResponse(transaction)))
}

// GetTransaction retrieves a specific transaction by ID
// @Summary Get transaction by ID
// @Description Retrieve a single transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} dto.SuccessResponse "Transaction"
// @Failure 400 {object} errors.Response "VALIDATION_ERROR - Invalid transaction ID"
// @Failure 404 {object} errors.Response "NOT_FOUND - Transaction not found"
// @Failure 503 {object} errors.Response "DATABASE_ERROR - Datastore unavailable"
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.CodeValidationError,
			errors.WithDetails("id: must be a valid UUID"))
	}

	transaction, err := h.transactionRepo.GetByID(id)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.CodeNotFound,
				errors.WithMessage("Transaction not found"))
		}
		return SendDatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse(toTransactionResponse(transaction)))
}

// ListTransactions retrieves paginated transaction history with filtering
// @Summary List transactions
// @Description Retrieve paginated, sorted, and filtered transactions
// @Tags Transactions
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Results per page (max 100)" default(10)
// @Param sortBy query string false "Sort column" Enums(amount, type, timestamp) default(timestamp)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param type query string false "Filter by transaction type" Enums(credit, debit)
// @Param startDate query string false "Inclusive lower timestamp bound (RFC 3339)"
// @Param endDate query string false "Inclusive upper timestamp bound (RFC 3339)"
// @Param minAmount query string false "Inclusive minimum amount"
// @Param maxAmount query string false "Inclusive maximum amount"
// @Success 200 {object} dto.SuccessResponse "Transactions with pagination metadata"
// @Failure 400 {object} errors.Response "VALIDATION_ERROR - Invalid query parameters"
// @Failure 503 {object} errors.Response "DATABASE_ERROR - Datastore unavailable"
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	query, details := parseTransactionQuery(c)
	if len(details) > 0 {
		return c.JSON(http.StatusBadRequest, errors.NewValidationErrorFromList(details))
	}

	transactions, total, err := h.transactionRepo.List(query)
	if err != nil {
		return SendDatabaseError(c, err)
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	pagination := dto.Pagination{
		Page:       query.Page,
		Limit:      query.Limit,
		TotalItems: total,
		TotalPages: models.TotalPages(total, query.Limit),
	}

	return c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, pagination))
}

// parseTransactionQuery parses and validates listing query parameters.
// Every invalid parameter is reported, not just the first one.
func parseTransactionQuery(c echo.Context) (models.TransactionQuery, []string) {
	query := models.DefaultTransactionQuery()
	var details []string

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			details = append(details, "page: must be a positive integer")
		} else {
			query.Page = page
		}
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			details = append(details, "limit: must be a positive integer")
		} else {
			if limit > models.MaxLimit {
				limit = models.MaxLimit
			}
			query.Limit = limit
		}
	}

	if sortBy := c.QueryParam("sortBy"); sortBy != "" {
		if !models.IsValidSortBy(sortBy) {
			details = append(details, "sortBy: must be one of amount, type, timestamp")
		} else {
			query.SortBy = sortBy
		}
	}

	if sortOrder := c.QueryParam("sortOrder"); sortOrder != "" {
		if !models.IsValidSortOrder(sortOrder) {
			details = append(details, "sortOrder: must be either asc or desc")
		} else {
			query.SortOrder = sortOrder
		}
	}

	if txnType := c.QueryParam("type"); txnType != "" {
		if !models.IsValidTransactionType(txnType) {
			details = append(details, "type: must be either credit or debit")
		} else {
			query.Type = txnType
		}
	}

	if startDateStr := c.QueryParam("startDate"); startDateStr != "" {
		startDate, err := time.Parse(time.RFC3339, startDateStr)
		if err != nil {
			details = append(details, "startDate: must be a valid ISO-8601 timestamp")
		} else {
			query.StartDate = &startDate
		}
	}

	if endDateStr := c.QueryParam("endDate"); endDateStr != "" {
		endDate, err := time.Parse(time.RFC3339, endDateStr)
		if err != nil {
			details = append(details, "endDate: must be a valid ISO-8601 timestamp")
		} else {
			query.EndDate = &endDate
		}
	}

	if minAmountStr := c.QueryParam("minAmount"); minAmountStr != "" {
		minAmount, err := decimal.NewFromString(minAmountStr)
		if err != nil {
			details = append(details, "minAmount: must be a valid number")
		} else {
			query.MinAmount = &minAmount
		}
	}

	if maxAmountStr := c.QueryParam("maxAmount"); maxAmountStr != "" {
		maxAmount, err := decimal.NewFromString(maxAmountStr)
		if err != nil {
			details = append(details, "maxAmount: must be a valid number")
		} else {
			query.MaxAmount = &maxAmount
		}
	}

	return query, details
}

// toTransactionResponse converts a transaction model to its wire representation
func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		Amount:    t.Amount.StringFixed(2),
		Type:      t.Type,
		Timestamp: t.Timestamp,
	}
}
