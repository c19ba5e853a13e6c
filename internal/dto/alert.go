package dto

import (
	"time"

	"github.com/google/uuid"
)

// AlertResponse represents an alert in API responses
type AlertResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Explanation string    `json:"explanation,omitempty"`
	Confidence  int       `json:"confidence"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListAlertsResponse represents the response for listing alerts
type ListAlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int             `json:"total"`
}

// UpdateAlertStatusRequest contains the target status for an alert
type UpdateAlertStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active acknowledged resolved"`
}
