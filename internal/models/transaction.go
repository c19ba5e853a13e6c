package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount = errors.New("transaction amount must be positive")
)

// Transaction represents a single spend record for a user.
type Transaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description       string          `gorm:"type:text" json:"description"`
	Category          string          `gorm:"type:varchar(100)" json:"category,omitempty"`
	PredictedCategory string          `gorm:"type:varchar(100)" json:"predicted_category,omitempty"`
	MerchantName      string          `gorm:"type:varchar(255)" json:"merchant_name,omitempty"`
	TxnDate           time.Time       `gorm:"not null;index" json:"txn_date"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.TxnDate.IsZero() {
		t.TxnDate = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// EffectiveCategory returns the explicit category when set, falling back to
// the category predicted by the categorization model.
func (t *Transaction) EffectiveCategory() string {
	if t.Category != "" {
		return t.Category
	}
	return t.PredictedCategory
}

// MatchesCategory reports whether the transaction belongs to the named
// category, compared case-insensitively.
func (t *Transaction) MatchesCategory(name string) bool {
	category := t.EffectiveCategory()
	return category != "" && strings.EqualFold(category, name)
}

// IsIncome reports whether the transaction credits the user's balance.
func (t *Transaction) IsIncome() bool {
	return strings.EqualFold(t.EffectiveCategory(), "Income")
}

func (t *Transaction) TableName() string {
	return "transactions"
}
