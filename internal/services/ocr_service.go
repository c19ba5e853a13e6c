package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finsight/internal/config"
	"finsight/internal/models"
	"finsight/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const uploadDir = "uploads"

// receiptExtraction mirrors the model service's extraction response.
type receiptExtraction struct {
	MerchantName string   `json:"merchant_name"`
	TotalAmount  float64  `json:"total_amount"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	TaxAmount    float64  `json:"tax_amount"`
	BillNumber   string   `json:"bill_number"`
	RawText      []string `json:"raw_text"`
}

// OCRService forwards uploaded receipt images to the external model service
// and persists the structured extraction result.
type OCRService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
	config      *config.ModelServiceConfig
	client      *http.Client
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewOCRService creates a new OCR service
func NewOCRService(
	receiptRepo repositories.ReceiptRepositoryInterface,
	cfg *config.ModelServiceConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) OCRServiceInterface {
	return &OCRService{
		receiptRepo: receiptRepo,
		config:      cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ExtractReceipt uploads the image to the model service, stores a local copy,
// and persists the extracted receipt for the user.
func (s *OCRService) ExtractReceipt(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*models.Receipt, error) {
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	imagePath := s.saveImage(filename, contents)

	extraction, err := s.extract(ctx, filename, contents)
	if err != nil {
		s.metrics.IncrementCounter("model.request", map[string]string{"endpoint": "extract_receipt", "status": "error"})
		return nil, err
	}
	s.metrics.IncrementCounter("model.request", map[string]string{"endpoint": "extract_receipt", "status": "success"})

	receipt := &models.Receipt{
		UserID:    userID,
		Merchant:  extraction.MerchantName,
		Total:     decimal.NewFromFloat(extraction.TotalAmount),
		ImagePath: imagePath,
		RawText:   strings.Join(extraction.RawText, "\n"),
	}

	if extraction.Date != "" {
		if purchased, err := time.Parse("2006-01-02", extraction.Date); err == nil {
			receipt.PurchasedAt = &purchased
		}
	}

	if err := s.receiptRepo.Create(receipt); err != nil {
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	s.logger.Info("receipt extracted",
		slog.String("user_id", userID.String()),
		slog.String("receipt_id", receipt.ID.String()),
		slog.String("merchant", receipt.Merchant))

	return receipt, nil
}

func (s *OCRService) extract(ctx context.Context, filename string, contents []byte) (*receiptExtraction, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart form: %w", err)
	}
	if _, err := part.Write(contents); err != nil {
		return nil, fmt.Errorf("write multipart form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.config.BaseURL+"/extract/receipt",
		&body,
	)
	if err != nil {
		return nil, fmt.Errorf("create extraction request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := s.client.Do(req)
	s.metrics.RecordProcessingTime("model.request", time.Since(start))
	if err != nil {
		s.logger.Error("model service request failed",
			slog.String("url", req.URL.String()),
			slog.Any("error", err))
		return nil, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("receipt extraction failed",
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrModelServiceDegraded, resp.StatusCode)
	}

	var extraction receiptExtraction
	if err := json.Unmarshal(respBody, &extraction); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}

	return &extraction, nil
}

// saveImage writes a local copy of the upload. Failure is tolerated so an
// unwritable disk never blocks extraction.
func (s *OCRService) saveImage(filename string, contents []byte) string {
	imagePath := filepath.Join(uploadDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(filename)))

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		s.logger.Warn("failed to create upload directory", slog.Any("error", err))
		return "unknown.jpg"
	}

	if err := os.WriteFile(imagePath, contents, 0o644); err != nil {
		s.logger.Warn("failed to save image locally", slog.Any("error", err))
		return "unknown.jpg"
	}

	return imagePath
}
