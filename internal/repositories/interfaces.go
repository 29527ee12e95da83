package repositories

import (
	"txnledger/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines transaction persistence operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	List(query models.TransactionQuery) ([]models.Transaction, int64, error)
}
