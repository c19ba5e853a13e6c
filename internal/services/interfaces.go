package services

import (
	"context"
	"io"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"

	"github.com/google/uuid"
)

// RiskEngineInterface evaluates one budget against its period-to-date
// transactions and classifies the financial risk, if any.
type RiskEngineInterface interface {
	Evaluate(budget *models.Budget, transactions []models.Transaction, now time.Time) *RiskFinding
}

// AlertServiceInterface defines alert emission, dedup and lifecycle operations
type AlertServiceInterface interface {
	// Admit persists an alert for the finding unless an active alert with the
	// same message already exists for the same calendar day.
	Admit(finding *RiskFinding, now time.Time) (bool, error)

	// CleanupLegacyAlerts purges leftover demo alert records. Best-effort:
	// failures are logged, never returned.
	CleanupLegacyAlerts()

	GetActiveAlerts() ([]models.Alert, error)
	GetRecentAlerts() ([]models.Alert, error)
	ResolveAlert(id uuid.UUID) error
}

// RiskMonitorInterface drives periodic analysis passes over all budgets
type RiskMonitorInterface interface {
	// Start runs analysis cycles on a fixed interval until ctx is cancelled.
	Start(ctx context.Context)

	// RunCycle performs one full analysis pass over every budget.
	RunCycle(ctx context.Context)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// OCRServiceInterface proxies receipt images to the external model service
// and persists the extraction result.
type OCRServiceInterface interface {
	ExtractReceipt(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*models.Receipt, error)
}

// GoalPredictionServiceInterface proxies goal completion forecasting to the
// external model service.
type GoalPredictionServiceInterface interface {
	PredictGoalCompletion(ctx context.Context, goalID, userID uuid.UUID) (*dto.GoalPredictionResponse, error)
}
