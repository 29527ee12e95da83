package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
)

// Transaction represents a single ledger entry
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null;index" json:"amount"`
	Type      string          `gorm:"type:varchar(10);not null;index" json:"type"`
	Timestamp time.Time       `gorm:"not null;index" json:"timestamp"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// IsCredit returns true if the transaction adds funds
func (t *Transaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// IsDebit returns true if the transaction removes funds
func (t *Transaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeCredit, TransactionTypeDebit:
		return true
	default:
		return false
	}
}
