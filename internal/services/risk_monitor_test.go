package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"finsight/internal/models"
	"finsight/internal/repositories/repository_mocks"
	"finsight/internal/services"
	"finsight/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RiskMonitorTestSuite struct {
	suite.Suite
	ctx             context.Context
	ctrl            *gomock.Controller
	budgetRepo      *repository_mocks.MockBudgetRepositoryInterface
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	engine          *service_mocks.MockRiskEngineInterface
	alerts          *service_mocks.MockAlertServiceInterface
	metrics         *service_mocks.MockMetricsRecorderInterface
	monitor         *services.RiskMonitor
}

func TestRiskMonitorSuite(t *testing.T) {
	suite.Run(t, new(RiskMonitorTestSuite))
}

func (s *RiskMonitorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.budgetRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.engine = service_mocks.NewMockRiskEngineInterface(s.ctrl)
	s.alerts = service_mocks.NewMockAlertServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)

	s.monitor = services.NewRiskMonitor(
		s.budgetRepo,
		s.transactionRepo,
		s.engine,
		s.alerts,
		s.metrics,
		5*time.Minute,
		4,
	)
}

func (s *RiskMonitorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RiskMonitorTestSuite) budget(name string) models.Budget {
	return models.Budget{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Name:        name,
		LimitAmount: decimal.NewFromInt(500),
	}
}

func (s *RiskMonitorTestSuite) finding(budgetID uuid.UUID) *services.RiskFinding {
	return &services.RiskFinding{
		BudgetID:    budgetID,
		Kind:        services.RiskKindProjectedOverspend,
		Type:        models.AlertTypeFinancial,
		Severity:    models.AlertSeverityHigh,
		Message:     "Projected Overspending: Groceries",
		Explanation: "projection crossed the limit",
		Confidence:  90,
	}
}

func (s *RiskMonitorTestSuite) expectCycleCompleted() {
	s.metrics.EXPECT().IncrementCounter("risk.cycle.completed", gomock.Nil()).Times(1)
	s.metrics.EXPECT().RecordProcessingTime("risk.cycle", gomock.Any()).Times(1)
}

func (s *RiskMonitorTestSuite) TestRunCycle_EmitsAlertForRiskyBudget() {
	budget := s.budget("Groceries")
	finding := s.finding(budget.ID)
	transactions := []models.Transaction{{ID: uuid.New(), Amount: decimal.NewFromInt(300)}}

	s.budgetRepo.EXPECT().GetAll().Return([]models.Budget{budget}, nil)
	s.transactionRepo.EXPECT().GetByUserAndDateRange(budget.UserID, gomock.Any(), gomock.Any()).Return(transactions, nil)
	s.engine.EXPECT().Evaluate(gomock.Any(), transactions, gomock.Any()).Return(finding)
	s.alerts.EXPECT().Admit(finding, gomock.Any()).Return(true, nil)

	s.metrics.EXPECT().IncrementCounter("risk.findings", map[string]string{
		"kind":     services.RiskKindProjectedOverspend,
		"severity": models.AlertSeverityHigh,
	}).Times(1)
	s.metrics.EXPECT().IncrementCounter("risk.alerts.emitted", map[string]string{
		"kind":     services.RiskKindProjectedOverspend,
		"severity": models.AlertSeverityHigh,
	}).Times(1)
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_SuppressedFindingNotCountedAsEmitted() {
	budget := s.budget("Groceries")
	finding := s.finding(budget.ID)

	s.budgetRepo.EXPECT().GetAll().Return([]models.Budget{budget}, nil)
	s.transactionRepo.EXPECT().GetByUserAndDateRange(budget.UserID, gomock.Any(), gomock.Any()).Return([]models.Transaction{}, nil)
	s.engine.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(finding)
	s.alerts.EXPECT().Admit(finding, gomock.Any()).Return(false, nil)

	s.metrics.EXPECT().IncrementCounter("risk.findings", gomock.Any()).Times(1)
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_QuietBudgetProducesNothing() {
	budget := s.budget("Groceries")

	s.budgetRepo.EXPECT().GetAll().Return([]models.Budget{budget}, nil)
	s.transactionRepo.EXPECT().GetByUserAndDateRange(budget.UserID, gomock.Any(), gomock.Any()).Return([]models.Transaction{}, nil)
	s.engine.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_BudgetFetchErrorAbandonsCycle() {
	s.budgetRepo.EXPECT().GetAll().Return(nil, errors.New("connection refused"))
	s.metrics.EXPECT().IncrementCounter("risk.cycle.errors", map[string]string{"stage": "fetch_budgets"}).Times(1)

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_TransactionErrorIsolatedToOneBudget() {
	broken := s.budget("Groceries")
	healthy := s.budget("Dining")
	finding := s.finding(healthy.ID)

	s.budgetRepo.EXPECT().GetAll().Return([]models.Budget{broken, healthy}, nil)
	s.transactionRepo.EXPECT().GetByUserAndDateRange(broken.UserID, gomock.Any(), gomock.Any()).Return(nil, errors.New("query timeout"))
	s.transactionRepo.EXPECT().GetByUserAndDateRange(healthy.UserID, gomock.Any(), gomock.Any()).Return([]models.Transaction{}, nil)
	s.engine.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(finding)
	s.alerts.EXPECT().Admit(finding, gomock.Any()).Return(true, nil)

	s.metrics.EXPECT().IncrementCounter("risk.budget.errors", map[string]string{"stage": "fetch_transactions"}).Times(1)
	s.metrics.EXPECT().IncrementCounter("risk.findings", gomock.Any()).Times(1)
	s.metrics.EXPECT().IncrementCounter("risk.alerts.emitted", gomock.Any()).Times(1)
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_AdmitErrorIsolated() {
	budget := s.budget("Groceries")
	finding := s.finding(budget.ID)

	s.budgetRepo.EXPECT().GetAll().Return([]models.Budget{budget}, nil)
	s.transactionRepo.EXPECT().GetByUserAndDateRange(budget.UserID, gomock.Any(), gomock.Any()).Return([]models.Transaction{}, nil)
	s.engine.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(finding)
	s.alerts.EXPECT().Admit(finding, gomock.Any()).Return(false, errors.New("insert failed"))

	s.metrics.EXPECT().IncrementCounter("risk.findings", gomock.Any()).Times(1)
	s.metrics.EXPECT().IncrementCounter("risk.budget.errors", map[string]string{"stage": "admit_alert"}).Times(1)
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_AllBudgetsVisited() {
	budgets := make([]models.Budget, 6)
	for i := range budgets {
		budgets[i] = s.budget("Groceries")
	}

	s.budgetRepo.EXPECT().GetAll().Return(budgets, nil)
	s.transactionRepo.EXPECT().GetByUserAndDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.Transaction{}, nil).Times(len(budgets))
	s.engine.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(len(budgets))
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}

func (s *RiskMonitorTestSuite) TestRunCycle_EvaluatesWithinCurrentMonth() {
	budget := s.budget("Groceries")

	s.budgetRepo.EXPECT().GetAll().Return([]models.Budget{budget}, nil)
	s.transactionRepo.EXPECT().
		GetByUserAndDateRange(budget.UserID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
			s.Equal(1, from.Day())
			s.Equal(0, from.Hour())
			s.Equal(from.Month(), to.Month())
			s.True(to.After(from) || to.Equal(from))
			return []models.Transaction{}, nil
		})
	s.engine.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.expectCycleCompleted()

	s.monitor.RunCycle(s.ctx)
}
