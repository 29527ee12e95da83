package repositories

import (
	"errors"
	"fmt"

	"txnledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// sortColumns whitelists the columns a listing may be ordered by.
// Anything else must be rejected before it reaches the repository.
var sortColumns = map[string]string{
	models.SortByAmount:    "amount",
	models.SortByType:      "type",
	models.SortByTimestamp: "timestamp",
}

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// List retrieves transactions matching the query filters along with the
// total row count before pagination. Filters combine conjunctively; the
// date and amount bounds are inclusive.
func (r *transactionRepository) List(query models.TransactionQuery) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	q := r.db.Model(&models.Transaction{})

	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}
	if query.StartDate != nil {
		q = q.Where("timestamp >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		q = q.Where("timestamp <= ?", *query.EndDate)
	}
	if query.MinAmount != nil {
		q = q.Where("amount >= ?", *query.MinAmount)
	}
	if query.MaxAmount != nil {
		q = q.Where("amount <= ?", *query.MaxAmount)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = sortColumns[models.SortByTimestamp]
	}
	direction := "DESC"
	if query.SortOrder == models.SortOrderAsc {
		direction = "ASC"
	}

	// Secondary id ordering keeps pages stable when sort keys collide.
	if err := q.Order(fmt.Sprintf("%s %s, id ASC", column, direction)).
		Offset(query.Offset()).Limit(query.Limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}
