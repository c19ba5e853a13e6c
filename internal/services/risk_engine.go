package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// RiskKindExceeded means the budget limit has already been spent.
	RiskKindExceeded = "exceeded"
	// RiskKindProjectedOverspend means the month-end projection crosses the limit.
	RiskKindProjectedOverspend = "projected_overspend"

	// ExceededConfidence is fixed: the overspend is observed, not forecast.
	ExceededConfidence = 99

	// Projected-overspend confidence is 85 plus jitter in [0, 10). The jitter
	// is display variety only and never influences classification.
	projectedConfidenceBase   = 85
	projectedConfidenceJitter = 10

	// A linear extrapolation from the first few days of a month is noise, so
	// projections only alert after this many days have elapsed, unless the
	// spend ratio escape hatch below fires first.
	minProjectionDays = 5
)

// spendRatioEscapeHatch lets genuinely large spends alert early: once more
// than half the limit is gone, the projection is trusted regardless of how few
// days have passed.
var spendRatioEscapeHatch = decimal.NewFromFloat(0.5)

// RiskFinding is the engine's classification of one budget in one cycle.
type RiskFinding struct {
	BudgetID    uuid.UUID
	Kind        string
	Type        string
	Severity    string
	Message     string
	Explanation string
	Confidence  int
}

// RiskEngine projects month-end spend for a budget from partial-month data
// and classifies the risk. Evaluation is pure apart from confidence jitter.
type RiskEngine struct {
	jitter func(n int) int
}

// NewRiskEngine creates a risk engine with the default random jitter source.
func NewRiskEngine() RiskEngineInterface {
	return &RiskEngine{jitter: rand.Intn}
}

// NewRiskEngineWithJitter creates a risk engine with an injected jitter
// source, letting tests pin confidence to a deterministic value.
func NewRiskEngineWithJitter(jitter func(n int) int) RiskEngineInterface {
	return &RiskEngine{jitter: jitter}
}

// Evaluate inspects a budget against its current-month transactions as of now.
// It returns nil when the budget is inert or no risk is detected.
func (e *RiskEngine) Evaluate(budget *models.Budget, transactions []models.Transaction, now time.Time) *RiskFinding {
	if budget == nil || budget.IsInert() {
		return nil
	}

	totalSpent := decimal.Zero
	for i := range transactions {
		if transactions[i].MatchesCategory(budget.Name) {
			totalSpent = totalSpent.Add(transactions[i].Amount)
		}
	}

	limit := budget.LimitAmount

	if totalSpent.GreaterThanOrEqual(limit) {
		return e.exceededFinding(budget, totalSpent)
	}

	daysPassed := now.Day()
	if daysPassed < 1 {
		daysPassed = 1
	}
	daysInMonth := daysIn(now)

	dailyBurnRate := totalSpent.Div(decimal.NewFromInt(int64(daysPassed)))
	projectedSpend := dailyBurnRate.Mul(decimal.NewFromInt(int64(daysInMonth)))

	if !projectedSpend.GreaterThan(limit) {
		return nil
	}

	if daysPassed <= minProjectionDays && !totalSpent.GreaterThan(limit.Mul(spendRatioEscapeHatch)) {
		return nil
	}

	return e.projectedFinding(budget, totalSpent, projectedSpend)
}

func (e *RiskEngine) exceededFinding(budget *models.Budget, totalSpent decimal.Decimal) *RiskFinding {
	return &RiskFinding{
		BudgetID: budget.ID,
		Kind:     RiskKindExceeded,
		Type:     models.AlertTypeFinancial,
		Severity: models.AlertSeverityCritical,
		Message:  fmt.Sprintf("Budget Exceeded: %s", budget.Name),
		Explanation: fmt.Sprintf("User %s has exceeded their '%s' budget. Limit: %s, Spent: %s",
			ownerName(budget),
			budget.Name,
			budget.LimitAmount.StringFixed(2),
			totalSpent.StringFixed(2)),
		Confidence: ExceededConfidence,
	}
}

func (e *RiskEngine) projectedFinding(budget *models.Budget, totalSpent, projectedSpend decimal.Decimal) *RiskFinding {
	percentOfLimit := projectedSpend.Div(budget.LimitAmount).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return &RiskFinding{
		BudgetID: budget.ID,
		Kind:     RiskKindProjectedOverspend,
		Type:     models.AlertTypeFinancial,
		Severity: models.AlertSeverityHigh,
		Message:  fmt.Sprintf("Projected Overspending: %s", budget.Name),
		Explanation: fmt.Sprintf("User %s is on track to exceed their '%s' budget. Current spend: %s. Projected: %s (%d%% of limit).",
			ownerName(budget),
			budget.Name,
			totalSpent.StringFixed(2),
			projectedSpend.StringFixed(2),
			percentOfLimit),
		Confidence: projectedConfidenceBase + e.jitter(projectedConfidenceJitter),
	}
}

func ownerName(budget *models.Budget) string {
	name := strings.TrimSpace(budget.User.FullName())
	if name == "" {
		return budget.UserID.String()
	}
	return name
}

// daysIn returns the number of days in the month containing t.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// StartOfMonth returns midnight on the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
