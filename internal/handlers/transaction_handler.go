package handlers

import (
	"net/http"
	"time"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 200
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionRepo repositories.TransactionRepositoryInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
	}
}

// CreateTransaction records a new spend for the authenticated user
// @Summary Record a transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse "Transaction recorded"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return SendError(c, errors.TransactionInvalidAmount)
	}

	txnDate := time.Now()
	if req.TxnDate != nil {
		txnDate = *req.TxnDate
	}

	transaction := &models.Transaction{
		UserID:       userID,
		Amount:       amount,
		Description:  req.Description,
		Category:     req.Category,
		MerchantName: req.MerchantName,
		TxnDate:      txnDate,
	}

	if err := h.transactionRepo.Create(transaction); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// ListTransactions returns the authenticated user's transactions, newest first
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} dto.ListTransactionsResponse "Transactions"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	offset := getIntParam(c, "offset", 0)
	limit := getIntParam(c, "limit", defaultTransactionPageSize)
	if limit <= 0 || limit > maxTransactionPageSize {
		limit = defaultTransactionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	transactions, total, err := h.transactionRepo.GetByUserID(userID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: responses,
		Pagination: dto.PaginationInfo{
			Offset: offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// DeleteTransaction removes a transaction belonging to the authenticated user
// @Summary Delete transaction
// @Tags Transactions
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204 "Transaction deleted"
// @Failure 403 {object} errors.ErrorResponse "TRANSACTION_003 - Transaction belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionRepo.GetByID(transactionID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	if transaction.UserID != userID {
		return SendError(c, errors.TransactionAccessDenied)
	}

	if err := h.transactionRepo.Delete(transactionID); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toTransactionResponse(transaction *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                transaction.ID,
		Amount:            transaction.Amount.StringFixed(2),
		Description:       transaction.Description,
		Category:          transaction.Category,
		PredictedCategory: transaction.PredictedCategory,
		MerchantName:      transaction.MerchantName,
		TxnDate:           transaction.TxnDate,
		CreatedAt:         transaction.CreatedAt,
	}
}
