package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateGoalRequest contains the fields for creating a savings goal
type CreateGoalRequest struct {
	Name          string     `json:"name" validate:"required,min=1,max=100"`
	TargetAmount  string     `json:"targetAmount" validate:"required"`
	CurrentAmount string     `json:"currentAmount,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

// UpdateGoalRequest contains the updatable goal fields
type UpdateGoalRequest struct {
	Name          string     `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	TargetAmount  string     `json:"targetAmount,omitempty"`
	CurrentAmount string     `json:"currentAmount,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

// GoalResponse represents a savings goal in API responses
type GoalResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  string     `json:"targetAmount"`
	CurrentAmount string     `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ListGoalsResponse represents the response for listing a user's goals
type ListGoalsResponse struct {
	Goals []GoalResponse `json:"goals"`
	Total int            `json:"total"`
}

// GoalPredictionResponse mirrors the model service's completion forecast
type GoalPredictionResponse struct {
	PredictedCompletionDate string  `json:"predicted_completion_date"`
	DailySavingsEstimate    float64 `json:"daily_savings_estimate"`
	RequiredDailySavings    float64 `json:"required_daily_savings"`
	OnTrack                 bool    `json:"on_track"`
	SuggestedDailyCut       float64 `json:"suggested_daily_cut"`
}
