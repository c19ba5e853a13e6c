package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptResponse represents a stored OCR extraction in API responses
type ReceiptResponse struct {
	ID          uuid.UUID  `json:"id"`
	Merchant    string     `json:"merchant,omitempty"`
	Total       string     `json:"total"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	ImagePath   string     `json:"imagePath"`
	RawText     string     `json:"rawText,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ListReceiptsResponse represents the response for listing a user's receipts
type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Total    int               `json:"total"`
}
