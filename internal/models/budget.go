package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBudgetNameRequired = errors.New("budget name is required")
)

// Budget is a per-user monthly spending limit for one category.
// The budget name doubles as the category name transactions are matched against.
type Budget struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"limit_amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return b.Validate()
}

func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if b.Name == "" {
		return ErrBudgetNameRequired
	}

	return nil
}

// IsInert reports whether the budget is excluded from risk analysis.
// A non-positive limit means the budget was never configured properly.
func (b *Budget) IsInert() bool {
	return b.LimitAmount.LessThanOrEqual(decimal.Zero)
}

func (b *Budget) TableName() string {
	return "budgets"
}
