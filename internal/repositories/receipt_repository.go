package repositories

import (
	"errors"
	"fmt"

	"finsight/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found")
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepositoryInterface {
	return &receiptRepository{
		db: db,
	}
}

func (r *receiptRepository) Create(receipt *models.Receipt) error {
	if err := r.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

func (r *receiptRepository) GetByID(id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return &receipt, nil
}

func (r *receiptRepository) GetByUserID(userID uuid.UUID) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to get receipts for user: %w", err)
	}
	return receipts, nil
}
