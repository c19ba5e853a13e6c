package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"finsight/internal/models"
	"finsight/internal/repositories"

	"github.com/google/uuid"
)

const recentAlertLimit = 5

// legacyAlertMessages identifies demo alert records from earlier releases
// that are purged once at startup.
var legacyAlertMessages = []string{
	"Projected Overspending Detected for 12 Users",
	"Unusual API Latency Pattern",
	"Categorization Model Confidence Drop",
}

// AlertService persists risk findings as alerts, suppressing duplicates so a
// given message is emitted at most once per calendar day.
type AlertService struct {
	alertRepo repositories.AlertRepositoryInterface

	// admitMu serializes the check-then-insert in Admit. Budgets may be
	// evaluated in parallel; without this two findings with the same message
	// could both pass the dedup check and double-write.
	admitMu sync.Mutex

	logger *slog.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo repositories.AlertRepositoryInterface) AlertServiceInterface {
	return &AlertService{
		alertRepo: alertRepo,
		logger:    slog.Default(),
	}
}

// Admit persists an alert for the finding unless an active alert with the
// exact same message was already created on the same calendar day. It reports
// whether a new alert was written.
func (s *AlertService) Admit(finding *RiskFinding, now time.Time) (bool, error) {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	active, err := s.alertRepo.GetByStatus(models.AlertStatusActive)
	if err != nil {
		return false, fmt.Errorf("failed to fetch active alerts: %w", err)
	}

	for i := range active {
		if active[i].Message == finding.Message && active[i].CreatedOn(now) {
			return false, nil
		}
	}

	alert := &models.Alert{
		Type:        finding.Type,
		Severity:    finding.Severity,
		Message:     finding.Message,
		Explanation: finding.Explanation,
		Confidence:  finding.Confidence,
		Status:      models.AlertStatusActive,
		CreatedAt:   now,
	}

	if err := s.alertRepo.Create(alert); err != nil {
		return false, fmt.Errorf("failed to persist alert: %w", err)
	}

	s.logger.Info("new alert generated",
		slog.String("message", alert.Message),
		slog.String("severity", alert.Severity),
		slog.Int("confidence", alert.Confidence),
	)

	return true, nil
}

// CleanupLegacyAlerts purges leftover demo alert records from earlier
// releases. Best-effort: deleting nothing is fine and data-layer errors are
// logged without failing startup.
func (s *AlertService) CleanupLegacyAlerts() {
	s.logger.Info("cleaning up legacy demo alerts")

	for _, message := range legacyAlertMessages {
		if err := s.alertRepo.DeleteByMessage(message); err != nil {
			s.logger.Warn("failed to clean up legacy alert",
				slog.String("message", message),
				slog.String("error", err.Error()),
			)
		}
	}
}

// GetActiveAlerts returns all alerts currently in the active status
func (s *AlertService) GetActiveAlerts() ([]models.Alert, error) {
	return s.alertRepo.GetByStatus(models.AlertStatusActive)
}

// GetRecentAlerts returns the most recently created alerts
func (s *AlertService) GetRecentAlerts() ([]models.Alert, error) {
	return s.alertRepo.GetRecent(recentAlertLimit)
}

// ResolveAlert moves an alert to the resolved status
func (s *AlertService) ResolveAlert(id uuid.UUID) error {
	return s.alertRepo.UpdateStatus(id, models.AlertStatusResolved)
}
