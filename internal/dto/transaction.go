package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTransactionRequest is the body of POST /api/transactions
type CreateTransactionRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Type      string  `json:"type" validate:"required,transaction_type"`
	Timestamp string  `json:"timestamp" validate:"omitempty,iso8601"`
}

// TransactionResponse is the wire representation of a transaction.
// Amounts travel as decimal strings to avoid float rounding on the client.
type TransactionResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    string    `json:"amount"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Pagination contains pagination metadata for list responses
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// SuccessResponse is the standardized success envelope
type SuccessResponse struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// NewSuccessResponse wraps data in the success envelope
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Status: "success",
		Data:   data,
	}
}

// NewPaginatedResponse wraps data and pagination metadata in the success envelope
func NewPaginatedResponse(data interface{}, pagination Pagination) *SuccessResponse {
	return &SuccessResponse{
		Status:     "success",
		Data:       data,
		Pagination: &pagination,
	}
}
