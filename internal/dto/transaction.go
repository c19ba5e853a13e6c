package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTransactionRequest contains the fields for recording a spend
type CreateTransactionRequest struct {
	Amount       string     `json:"amount" validate:"required"`
	Description  string     `json:"description,omitempty" validate:"omitempty,max=500"`
	Category     string     `json:"category,omitempty" validate:"omitempty,max=100"`
	MerchantName string     `json:"merchantName,omitempty" validate:"omitempty,max=255"`
	TxnDate      *time.Time `json:"txnDate,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                uuid.UUID `json:"id"`
	Amount            string    `json:"amount"`
	Description       string    `json:"description,omitempty"`
	Category          string    `json:"category,omitempty"`
	PredictedCategory string    `json:"predictedCategory,omitempty"`
	MerchantName      string    `json:"merchantName,omitempty"`
	TxnDate           time.Time `json:"txnDate"`
	CreatedAt         time.Time `json:"createdAt"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}
