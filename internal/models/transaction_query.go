package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pagination and sorting bounds for transaction listings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	SortByAmount    = "amount"
	SortByType      = "type"
	SortByTimestamp = "timestamp"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// TransactionQuery describes a transaction listing request: pagination,
// sorting, and optional conjunctive filters. Nil or empty filter fields
// impose no constraint.
type TransactionQuery struct {
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

// DefaultTransactionQuery returns a query with the default pagination and
// sort settings and no filters.
func DefaultTransactionQuery() TransactionQuery {
	return TransactionQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    SortByTimestamp,
		SortOrder: SortOrderDesc,
	}
}

// Offset returns the number of rows to skip for the current page
func (q TransactionQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// IsValidSortBy checks if the sort column is one of the allowed columns
func IsValidSortBy(sortBy string) bool {
	switch sortBy {
	case SortByAmount, SortByType, SortByTimestamp:
		return true
	default:
		return false
	}
}

// IsValidSortOrder checks if the sort direction is asc or desc
func IsValidSortOrder(sortOrder string) bool {
	switch sortOrder {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// TotalPages computes the page count for a result set of totalItems rows
func TotalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := totalItems / int64(limit)
	if totalItems%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
