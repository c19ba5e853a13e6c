package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finsight/internal/models"
	"finsight/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// RiskMonitor owns the analysis timer and drives one full pass over all
// budgets each cycle. It never surfaces errors to a caller: cycles run off
// any request path, so failures end as log output and metrics.
type RiskMonitor struct {
	budgetRepo      repositories.BudgetRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	engine          RiskEngineInterface
	alerts          AlertServiceInterface
	metrics         MetricsRecorderInterface
	interval        time.Duration
	maxConcurrency  int

	// cycleMu guarantees cycles never interleave: a tick arriving while a
	// cycle is still running is skipped, not queued.
	cycleMu sync.Mutex

	now    func() time.Time
	logger *slog.Logger
}

// NewRiskMonitor creates a new risk monitor
func NewRiskMonitor(
	budgetRepo repositories.BudgetRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	engine RiskEngineInterface,
	alerts AlertServiceInterface,
	metrics MetricsRecorderInterface,
	interval time.Duration,
	maxConcurrency int,
) *RiskMonitor {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	return &RiskMonitor{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		engine:          engine,
		alerts:          alerts,
		metrics:         metrics,
		interval:        interval,
		maxConcurrency:  maxConcurrency,
		now:             time.Now,
		logger:          slog.Default(),
	}
}

// Start runs analysis cycles on the configured interval until ctx is
// cancelled. An in-flight cycle is allowed to finish before Start returns.
func (m *RiskMonitor) Start(ctx context.Context) {
	m.logger.Info("risk monitor starting",
		slog.Duration("interval", m.interval),
		slog.Int("max_concurrency", m.maxConcurrency),
	)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Wait for any running cycle so shutdown never leaves a
			// half-written pass behind.
			m.cycleMu.Lock()
			m.cycleMu.Unlock()
			m.logger.Info("risk monitor stopped")
			return

		case <-ticker.C:
			m.runCycleIfIdle(ctx)
		}
	}
}

func (m *RiskMonitor) runCycleIfIdle(ctx context.Context) {
	if !m.cycleMu.TryLock() {
		m.logger.Warn("previous analysis cycle still running, skipping trigger")
		m.metrics.IncrementCounter("risk.cycle.skipped", nil)
		return
	}
	defer m.cycleMu.Unlock()

	m.RunCycle(ctx)
}

// RunCycle performs one full analysis pass over every budget. Independent
// budgets are evaluated concurrently; a failure on one budget is isolated and
// never aborts the rest of the pass.
func (m *RiskMonitor) RunCycle(ctx context.Context) {
	startTime := time.Now()
	now := m.now()
	periodStart := StartOfMonth(now)

	m.logger.Info("starting analysis cycle")

	budgets, err := m.budgetRepo.GetAll()
	if err != nil {
		m.logger.Error("failed to fetch budgets, abandoning cycle",
			slog.String("error", err.Error()),
		)
		m.metrics.IncrementCounter("risk.cycle.errors", map[string]string{"stage": "fetch_budgets"})
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.maxConcurrency)

	for i := range budgets {
		budget := budgets[i]
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			m.evaluateBudget(&budget, periodStart, now)
			return nil
		})
	}

	_ = g.Wait()

	duration := time.Since(startTime)
	m.metrics.IncrementCounter("risk.cycle.completed", nil)
	m.metrics.RecordProcessingTime("risk.cycle", duration)

	m.logger.Info("analysis cycle complete",
		slog.Int("budgets", len(budgets)),
		slog.Duration("duration", duration),
	)
}

func (m *RiskMonitor) evaluateBudget(budget *models.Budget, periodStart, now time.Time) {
	transactions, err := m.transactionRepo.GetByUserAndDateRange(budget.UserID, periodStart, now)
	if err != nil {
		m.logger.Error("failed to fetch transactions for budget",
			slog.String("budget_id", budget.ID.String()),
			slog.String("user_id", budget.UserID.String()),
			slog.String("error", err.Error()),
		)
		m.metrics.IncrementCounter("risk.budget.errors", map[string]string{"stage": "fetch_transactions"})
		return
	}

	finding := m.engine.Evaluate(budget, transactions, now)
	if finding == nil {
		return
	}

	m.metrics.IncrementCounter("risk.findings", map[string]string{
		"kind":     finding.Kind,
		"severity": finding.Severity,
	})

	emitted, err := m.alerts.Admit(finding, now)
	if err != nil {
		m.logger.Error("failed to admit alert",
			slog.String("budget_id", budget.ID.String()),
			slog.String("message", finding.Message),
			slog.String("error", err.Error()),
		)
		m.metrics.IncrementCounter("risk.budget.errors", map[string]string{"stage": "admit_alert"})
		return
	}

	if emitted {
		m.metrics.IncrementCounter("risk.alerts.emitted", map[string]string{
			"kind":     finding.Kind,
			"severity": finding.Severity,
		})
	}
}
