package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a transaction as returned by the API
type Transaction struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Page holds one page of transactions plus pagination metadata
type Page struct {
	Transactions []Transaction
	Page         int
	Limit        int
	TotalItems   int64
	TotalPages   int
}

// ListQuery describes the optional parameters of a list request.
// Zero-valued fields are omitted from the query string.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// CreateTransactionInput is the body of a create request
type CreateTransactionInput struct {
	Amount    float64    `json:"amount"`
	Type      string     `json:"type"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// APIError is a decoded error envelope from the server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// envelope mirrors the server's response wrapper for both outcomes
type envelope struct {
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"totalItems"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
	Details []string `json:"details"`
}

// Client is an HTTP client for the transaction API
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the API at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListTransactions fetches one page of transactions
func (c *Client) ListTransactions(ctx context.Context, query ListQuery) (*Page, error) {
	params := url.Values{}
	if query.Page != 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit != 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.SortBy != "" {
		params.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sortOrder", query.SortOrder)
	}
	if query.Type != "" {
		params.Set("type", query.Type)
	}
	if query.StartDate != nil {
		params.Set("startDate", query.StartDate.Format(time.RFC3339))
	}
	if query.EndDate != nil {
		params.Set("endDate", query.EndDate.Format(time.RFC3339))
	}
	if query.MinAmount != nil {
		params.Set("minAmount", query.MinAmount.String())
	}
	if query.MaxAmount != nil {
		params.Set("maxAmount", query.MaxAmount.String())
	}

	endpoint := c.baseURL + "/api/transactions"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	env, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	if err := json.Unmarshal(env.Data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	page := &Page{Transactions: transactions}
	if env.Pagination != nil {
		page.Page = env.Pagination.Page
		page.Limit = env.Pagination.Limit
		page.TotalItems = env.Pagination.TotalItems
		page.TotalPages = env.Pagination.TotalPages
	}

	return page, nil
}

// CreateTransaction records a new transaction
func (c *Client) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	env, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/transactions", body)
	if err != nil {
		return nil, err
	}

	var transaction Transaction
	if err := json.Unmarshal(env.Data, &transaction); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	return &transaction, nil
}

// GetTransaction fetches a single transaction by id
func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	env, err := c.do(ctx, http.MethodGet, c.baseURL+"/api/transactions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var transaction Transaction
	if err := json.Unmarshal(env.Data, &transaction); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	return &transaction, nil
}

// do sends the request and decodes the response envelope. Error envelopes
// become *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || env.Status == "error" {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
			Details:    env.Details,
		}
	}

	return &env, nil
}
