package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBudgetRequest contains the fields for creating a monthly budget
type CreateBudgetRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	LimitAmount string `json:"limitAmount" validate:"required"`
}

// UpdateBudgetRequest contains the updatable budget fields
type UpdateBudgetRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	LimitAmount string `json:"limitAmount,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LimitAmount string    `json:"limitAmount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListBudgetsResponse represents the response for listing a user's budgets
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Total   int              `json:"total"`
}
