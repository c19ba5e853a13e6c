package services

import (
	"errors"
	"testing"
	"time"

	"finsight/internal/models"
	"finsight/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AlertServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockAlertRepo *repository_mocks.MockAlertRepositoryInterface
	service       *AlertService
}

func TestAlertServiceSuite(t *testing.T) {
	suite.Run(t, new(AlertServiceTestSuite))
}

func (s *AlertServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAlertRepo = repository_mocks.NewMockAlertRepositoryInterface(s.ctrl)
	s.service = NewAlertService(s.mockAlertRepo).(*AlertService)
}

func (s *AlertServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AlertServiceTestSuite) finding(message string) *RiskFinding {
	return &RiskFinding{
		BudgetID:    uuid.New(),
		Kind:        RiskKindProjectedOverspend,
		Type:        models.AlertTypeFinancial,
		Severity:    models.AlertSeverityHigh,
		Message:     message,
		Explanation: "projection crossed the limit",
		Confidence:  90,
	}
}

var alertNow = time.Date(2026, time.August, 15, 12, 30, 0, 0, time.UTC)

func (s *AlertServiceTestSuite) TestAdmit_NewAlertPersisted() {
	finding := s.finding("Projected Overspending: Groceries")

	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return([]models.Alert{}, nil)
	s.mockAlertRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(alert *models.Alert) error {
		s.Equal(finding.Message, alert.Message)
		s.Equal(finding.Explanation, alert.Explanation)
		s.Equal(finding.Severity, alert.Severity)
		s.Equal(finding.Confidence, alert.Confidence)
		s.Equal(models.AlertStatusActive, alert.Status)
		s.Equal(alertNow, alert.CreatedAt)
		return nil
	})

	created, err := s.service.Admit(finding, alertNow)

	s.NoError(err)
	s.True(created)
}

func (s *AlertServiceTestSuite) TestAdmit_SameMessageSameDaySuppressed() {
	finding := s.finding("Projected Overspending: Groceries")
	existing := []models.Alert{{
		ID:        uuid.New(),
		Type:      models.AlertTypeFinancial,
		Severity:  models.AlertSeverityHigh,
		Message:   finding.Message,
		Status:    models.AlertStatusActive,
		CreatedAt: alertNow.Add(-3 * time.Hour),
	}}

	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return(existing, nil)

	created, err := s.service.Admit(finding, alertNow)

	s.NoError(err)
	s.False(created)
}

func (s *AlertServiceTestSuite) TestAdmit_SameMessagePreviousDayReadmitted() {
	finding := s.finding("Projected Overspending: Groceries")
	existing := []models.Alert{{
		ID:        uuid.New(),
		Type:      models.AlertTypeFinancial,
		Severity:  models.AlertSeverityHigh,
		Message:   finding.Message,
		Status:    models.AlertStatusActive,
		CreatedAt: alertNow.AddDate(0, 0, -1),
	}}

	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return(existing, nil)
	s.mockAlertRepo.EXPECT().Create(gomock.Any()).Return(nil)

	created, err := s.service.Admit(finding, alertNow)

	s.NoError(err)
	s.True(created)
}

func (s *AlertServiceTestSuite) TestAdmit_DifferentMessageSameDayAdmitted() {
	finding := s.finding("Projected Overspending: Dining")
	existing := []models.Alert{{
		ID:        uuid.New(),
		Type:      models.AlertTypeFinancial,
		Severity:  models.AlertSeverityHigh,
		Message:   "Projected Overspending: Groceries",
		Status:    models.AlertStatusActive,
		CreatedAt: alertNow,
	}}

	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return(existing, nil)
	s.mockAlertRepo.EXPECT().Create(gomock.Any()).Return(nil)

	created, err := s.service.Admit(finding, alertNow)

	s.NoError(err)
	s.True(created)
}

func (s *AlertServiceTestSuite) TestAdmit_FetchErrorPropagates() {
	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return(nil, errors.New("connection refused"))

	created, err := s.service.Admit(s.finding("Budget Exceeded: Groceries"), alertNow)

	s.Error(err)
	s.False(created)
	s.Contains(err.Error(), "failed to fetch active alerts")
}

func (s *AlertServiceTestSuite) TestAdmit_CreateErrorPropagates() {
	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return([]models.Alert{}, nil)
	s.mockAlertRepo.EXPECT().Create(gomock.Any()).Return(errors.New("insert failed"))

	created, err := s.service.Admit(s.finding("Budget Exceeded: Groceries"), alertNow)

	s.Error(err)
	s.False(created)
	s.Contains(err.Error(), "failed to persist alert")
}

func (s *AlertServiceTestSuite) TestCleanupLegacyAlerts_PurgesKnownMessages() {
	s.mockAlertRepo.EXPECT().DeleteByMessage("Projected Overspending Detected for 12 Users").Return(nil)
	s.mockAlertRepo.EXPECT().DeleteByMessage("Unusual API Latency Pattern").Return(nil)
	s.mockAlertRepo.EXPECT().DeleteByMessage("Categorization Model Confidence Drop").Return(nil)

	s.service.CleanupLegacyAlerts()
}

func (s *AlertServiceTestSuite) TestCleanupLegacyAlerts_ContinuesPastErrors() {
	s.mockAlertRepo.EXPECT().DeleteByMessage("Projected Overspending Detected for 12 Users").Return(errors.New("delete failed"))
	s.mockAlertRepo.EXPECT().DeleteByMessage("Unusual API Latency Pattern").Return(nil)
	s.mockAlertRepo.EXPECT().DeleteByMessage("Categorization Model Confidence Drop").Return(nil)

	s.service.CleanupLegacyAlerts()
}

func (s *AlertServiceTestSuite) TestGetActiveAlerts() {
	expected := []models.Alert{{ID: uuid.New(), Status: models.AlertStatusActive}}
	s.mockAlertRepo.EXPECT().GetByStatus(models.AlertStatusActive).Return(expected, nil)

	alerts, err := s.service.GetActiveAlerts()

	s.NoError(err)
	s.Equal(expected, alerts)
}

func (s *AlertServiceTestSuite) TestGetRecentAlerts_UsesFixedLimit() {
	expected := []models.Alert{{ID: uuid.New()}}
	s.mockAlertRepo.EXPECT().GetRecent(recentAlertLimit).Return(expected, nil)

	alerts, err := s.service.GetRecentAlerts()

	s.NoError(err)
	s.Equal(expected, alerts)
}

func (s *AlertServiceTestSuite) TestResolveAlert() {
	id := uuid.New()
	s.mockAlertRepo.EXPECT().UpdateStatus(id, models.AlertStatusResolved).Return(nil)

	s.NoError(s.service.ResolveAlert(id))
}
