package handlers

import (
	"net/http"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/repositories"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// ReceiptHandler handles receipt OCR uploads and history
type ReceiptHandler struct {
	ocrService  services.OCRServiceInterface
	receiptRepo repositories.ReceiptRepositoryInterface
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(ocrService services.OCRServiceInterface, receiptRepo repositories.ReceiptRepositoryInterface) *ReceiptHandler {
	return &ReceiptHandler{
		ocrService:  ocrService,
		receiptRepo: receiptRepo,
	}
}

// UploadReceipt extracts structured data from an uploaded receipt image
// @Summary Upload a receipt for OCR extraction
// @Tags Receipts
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt image"
// @Success 201 {object} dto.ReceiptResponse "Extracted receipt"
// @Failure 400 {object} errors.ErrorResponse "RECEIPT_002 - Missing receipt file"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 502 {object} errors.ErrorResponse "RECEIPT_003 - Extraction failed"
// @Router /receipts/upload [post]
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.ReceiptMissingFile)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer file.Close()

	receipt, err := h.ocrService.ExtractReceipt(c.Request().Context(), userID, fileHeader.Filename, file)
	if err != nil {
		if isModelServiceError(err) {
			return SendError(c, errors.ReceiptExtractFailed)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

// ListReceipts returns the authenticated user's stored receipts
// @Summary List receipts
// @Tags Receipts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListReceiptsResponse "User receipts"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /receipts [get]
func (h *ReceiptHandler) ListReceipts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	receipts, err := h.receiptRepo.GetByUserID(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, toReceiptResponse(&receipts[i]))
	}

	return c.JSON(http.StatusOK, dto.ListReceiptsResponse{
		Receipts: responses,
		Total:    len(responses),
	})
}

func toReceiptResponse(receipt *models.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:          receipt.ID,
		Merchant:    receipt.Merchant,
		Total:       receipt.Total.StringFixed(2),
		PurchasedAt: receipt.PurchasedAt,
		ImagePath:   receipt.ImagePath,
		RawText:     receipt.RawText,
		CreatedAt:   receipt.CreatedAt,
	}
}
