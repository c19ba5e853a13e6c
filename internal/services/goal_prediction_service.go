package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"finsight/internal/config"
	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrGoalAccessDenied     = errors.New("goal does not belong to user")
	ErrModelServiceDegraded = errors.New("model service returned an error")
)

// GoalPredictionService forwards a user's savings history to the external
// model service and returns its completion forecast.
type GoalPredictionService struct {
	goalRepo        repositories.GoalRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	config          *config.ModelServiceConfig
	client          *http.Client
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewGoalPredictionService creates a new goal prediction service
func NewGoalPredictionService(
	goalRepo repositories.GoalRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	cfg *config.ModelServiceConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) GoalPredictionServiceInterface {
	return &GoalPredictionService{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		config:          cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

type goalPredictionTransaction struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
}

type goalPredictionRequest struct {
	Transactions  []goalPredictionTransaction `json:"transactions"`
	GoalTarget    float64                     `json:"goal_target"`
	GoalCurrent   float64                     `json:"goal_current"`
	GoalDeadline  string                      `json:"goal_deadline"`
	GoalCreatedAt string                      `json:"goal_created_at"`
}

// PredictGoalCompletion asks the model service when the goal is likely to be
// reached, given the owner's full transaction history.
func (s *GoalPredictionService) PredictGoalCompletion(ctx context.Context, goalID, userID uuid.UUID) (*dto.GoalPredictionResponse, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}

	if goal.UserID != userID {
		return nil, ErrGoalAccessDenied
	}

	transactions, err := s.transactionRepo.GetAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}

	payload := s.buildRequest(goal, transactions)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.config.BaseURL+"/predict_goal_completion",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, respBody, err := s.do(req)
	s.metrics.RecordProcessingTime("model.request", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("model.request", map[string]string{"endpoint": "predict_goal", "status": "error"})
		return nil, fmt.Errorf("model service request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.metrics.IncrementCounter("model.request", map[string]string{"endpoint": "predict_goal", "status": "error"})
		s.logger.Error("goal prediction failed",
			slog.Int("status", resp.StatusCode),
			slog.String("goal_id", goalID.String()))
		return nil, fmt.Errorf("%w: status %d", ErrModelServiceDegraded, resp.StatusCode)
	}

	var prediction dto.GoalPredictionResponse
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}

	s.metrics.IncrementCounter("model.request", map[string]string{"endpoint": "predict_goal", "status": "success"})

	return &prediction, nil
}

func (s *GoalPredictionService) buildRequest(goal *models.Goal, transactions []models.Transaction) goalPredictionRequest {
	history := make([]goalPredictionTransaction, 0, len(transactions))
	for _, txn := range transactions {
		txnType := "Debit"
		if txn.IsIncome() {
			txnType = "Credit"
		}

		category := txn.EffectiveCategory()
		if category == "" {
			category = "Uncategorized"
		}

		history = append(history, goalPredictionTransaction{
			Date:     txn.TxnDate.Format("2006-01-02"),
			Amount:   txn.Amount.InexactFloat64(),
			Type:     txnType,
			Category: category,
		})
	}

	deadline := ""
	if goal.Deadline != nil {
		deadline = goal.Deadline.Format("2006-01-02")
	}

	return goalPredictionRequest{
		Transactions:  history,
		GoalTarget:    goal.TargetAmount.InexactFloat64(),
		GoalCurrent:   goal.CurrentAmount.InexactFloat64(),
		GoalDeadline:  deadline,
		GoalCreatedAt: goal.CreatedAt.Format(time.RFC3339),
	}
}

func (s *GoalPredictionService) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("model service request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err))
		return nil, nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()

	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp, body, nil
}
