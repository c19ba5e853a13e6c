package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a user savings goal tracked toward a target amount.
type Goal struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}

	return g.Validate()
}

func (g *Goal) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return g.Validate()
}

func (g *Goal) Validate() error {
	if g.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if g.Name == "" {
		return errors.New("goal name is required")
	}

	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("target amount must be positive")
	}

	return nil
}

func (g *Goal) TableName() string {
	return "goals"
}
