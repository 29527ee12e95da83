package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTransactionQuery(t *testing.T) {
	q := DefaultTransactionQuery()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, SortByTimestamp, q.SortBy)
	assert.Equal(t, SortOrderDesc, q.SortOrder)
	assert.Empty(t, q.Type)
	assert.Nil(t, q.StartDate)
	assert.Nil(t, q.EndDate)
	assert.Nil(t, q.MinAmount)
	assert.Nil(t, q.MaxAmount)
}

func TestTransactionQuery_Offset(t *testing.T) {
	testCases := []struct {
		page   int
		limit  int
		offset int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{7, 1, 6},
	}

	for _, tc := range testCases {
		q := TransactionQuery{Page: tc.page, Limit: tc.limit}
		assert.Equal(t, tc.offset, q.Offset())
	}
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		totalItems int64
		limit      int
		want       int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
		{5, 0, 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, TotalPages(tc.totalItems, tc.limit),
			"totalItems=%d limit=%d", tc.totalItems, tc.limit)
	}
}

func TestIsValidSortBy(t *testing.T) {
	assert.True(t, IsValidSortBy(SortByAmount))
	assert.True(t, IsValidSortBy(SortByType))
	assert.True(t, IsValidSortBy(SortByTimestamp))
	assert.False(t, IsValidSortBy("id"))
	assert.False(t, IsValidSortBy("balance"))
	assert.False(t, IsValidSortBy(""))
}

func TestIsValidSortOrder(t *testing.T) {
	assert.True(t, IsValidSortOrder(SortOrderAsc))
	assert.True(t, IsValidSortOrder(SortOrderDesc))
	assert.False(t, IsValidSortOrder("ASC"))
	assert.False(t, IsValidSortOrder("descending"))
	assert.False(t, IsValidSortOrder(""))
}
