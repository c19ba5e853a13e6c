package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AlertTypeFinancial = "financial"
	AlertTypeSystem    = "system"
	AlertTypeModel     = "model"

	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"

	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

var (
	ErrInvalidAlertType     = errors.New("invalid alert type")
	ErrInvalidAlertSeverity = errors.New("invalid alert severity")
	ErrInvalidAlertStatus   = errors.New("invalid alert status")
	ErrInvalidConfidence    = errors.New("confidence must be between 0 and 100")
)

// Alert is one detected risk instance. The analyzer creates alerts and never
// mutates them afterwards; status transitions happen through the HTTP surface.
type Alert struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	Severity    string    `gorm:"type:varchar(20);not null" json:"severity"`
	Message     string    `gorm:"type:varchar(255);not null;index" json:"message"`
	Explanation string    `gorm:"type:text" json:"explanation"`
	Confidence  int       `gorm:"not null" json:"confidence"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Status == "" {
		a.Status = AlertStatusActive
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return a.Validate()
}

func (a *Alert) Validate() error {
	switch a.Type {
	case AlertTypeFinancial, AlertTypeSystem, AlertTypeModel:
	default:
		return ErrInvalidAlertType
	}

	switch a.Severity {
	case AlertSeverityHigh, AlertSeverityCritical:
	default:
		return ErrInvalidAlertSeverity
	}

	switch a.Status {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusResolved:
	default:
		return ErrInvalidAlertStatus
	}

	if a.Confidence < 0 || a.Confidence > 100 {
		return ErrInvalidConfidence
	}

	if a.Message == "" {
		return errors.New("alert message is required")
	}

	return nil
}

// CreatedOn reports whether the alert was created on the given calendar day.
func (a *Alert) CreatedOn(day time.Time) bool {
	y1, m1, d1 := a.CreatedAt.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (a *Alert) IsActive() bool {
	return a.Status == AlertStatusActive
}

func (a *Alert) TableName() string {
	return "alerts"
}
