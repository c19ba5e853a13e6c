package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt stores the result of one OCR extraction run against an uploaded image.
type Receipt struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Merchant    string          `gorm:"type:varchar(255)" json:"merchant,omitempty"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"`
	ImagePath   string          `gorm:"type:varchar(512);not null" json:"image_path"`
	RawText     string          `gorm:"type:text" json:"raw_text,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	if r.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if r.ImagePath == "" {
		return errors.New("image path is required")
	}

	return nil
}

func (r *Receipt) TableName() string {
	return "receipts"
}
