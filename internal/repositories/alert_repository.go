package repositories

import (
	"errors"
	"fmt"

	"finsight/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlertNotFound = errors.New("alert not found")
)

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) AlertRepositoryInterface {
	return &alertRepository{
		db: db,
	}
}

// Create persists a new alert
func (r *alertRepository) Create(alert *models.Alert) error {
	if err := r.db.Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// GetByID retrieves an alert by ID
func (r *alertRepository) GetByID(id uuid.UUID) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

// GetByStatus retrieves all alerts in the given lifecycle status
func (r *alertRepository) GetByStatus(status string) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := r.db.Where("status = ?", status).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to get alerts by status: %w", err)
	}
	return alerts, nil
}

// GetRecent retrieves the most recently created alerts
func (r *alertRepository) GetRecent(limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent alerts: %w", err)
	}
	return alerts, nil
}

// UpdateStatus moves an alert to a new lifecycle status
func (r *alertRepository) UpdateStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&models.Alert{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update alert status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// DeleteByMessage removes every alert carrying the exact message text.
// Deleting nothing is not an error; this backs the idempotent startup cleanup.
func (r *alertRepository) DeleteByMessage(message string) error {
	if err := r.db.Where("message = ?", message).Delete(&models.Alert{}).Error; err != nil {
		return fmt.Errorf("failed to delete alerts by message: %w", err)
	}
	return nil
}
