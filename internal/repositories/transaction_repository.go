package repositories

import (
	"errors"
	"fmt"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

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
	var transaction models.Transaction
	if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByUserID retrieves transactions for a user with pagination
func (r *transactionRepository) GetByUserID(userID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	if err := r.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if err := r.db.Where("user_id = ?", userID).
		Offset(offset).Limit(limit).
		Order("txn_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetByUserAndDateRange retrieves a user's transactions dated within [start, end]
func (r *transactionRepository) GetByUserAndDateRange(userID uuid.UUID, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ? AND txn_date BETWEEN ? AND ?", userID, start, end).
		Order("txn_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// GetAllByUser retrieves every transaction for a user, oldest first
func (r *transactionRepository) GetAllByUser(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).
		Order("txn_date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// Delete deletes a transaction
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
