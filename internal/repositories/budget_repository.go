package repositories

import (
	"errors"
	"fmt"

	"finsight/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget
func (r *budgetRepository) Create(budget *models.Budget) error {
	if err := r.db.Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetByID retrieves a budget by ID
func (r *budgetRepository) GetByID(id uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.First(&budget, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// GetByUserID retrieves all budgets owned by a user
func (r *budgetRepository) GetByUserID(userID uuid.UUID) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for user: %w", err)
	}
	return budgets, nil
}

// GetAll retrieves every budget with its owning user preloaded.
// The user association is needed to render alert explanations.
func (r *budgetRepository) GetAll() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Preload("User").
		Order("created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all budgets: %w", err)
	}
	return budgets, nil
}

// Update updates an existing budget
func (r *budgetRepository) Update(budget *models.Budget) error {
	result := r.db.Save(budget)
	if result.Error != nil {
		return fmt.Errorf("failed to update budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// Delete deletes a budget
func (r *budgetRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Budget{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
