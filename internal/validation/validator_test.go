package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createBody struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Type      string  `json:"type" validate:"required,transaction_type"`
	Timestamp string  `json:"timestamp" validate:"omitempty,iso8601"`
}

func TestTransactionTypeRule(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(createBody{Amount: 10, Type: "credit"}))
	assert.NoError(t, v.Struct(createBody{Amount: 10, Type: "debit"}))
	assert.Error(t, v.Struct(createBody{Amount: 10, Type: "transfer"}))
	assert.Error(t, v.Struct(createBody{Amount: 10, Type: "Credit"}))
}

func TestISO8601Rule(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(createBody{Amount: 10, Type: "credit", Timestamp: "2025-03-15T09:30:00Z"}))
	assert.NoError(t, v.Struct(createBody{Amount: 10, Type: "credit", Timestamp: "2025-03-15T09:30:00+02:00"}))
	assert.NoError(t, v.Struct(createBody{Amount: 10, Type: "credit"}), "timestamp is optional")
	assert.Error(t, v.Struct(createBody{Amount: 10, Type: "credit", Timestamp: "2025-03-15"}))
	assert.Error(t, v.Struct(createBody{Amount: 10, Type: "credit", Timestamp: "yesterday"}))
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	v := NewValidator().GetValidate()

	err := v.Struct(createBody{Amount: -1, Type: "credit"})
	require.Error(t, err)

	validationErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "amount", validationErrs[0].Field())
}

func TestGetValidatorIsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
