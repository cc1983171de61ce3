package engine

import (
	"sort"
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

// BudgetStatus is the evaluation of one budget goal against the current
// calendar month. Progress is clamped to [0, 1]; Remaining may go negative.
type BudgetStatus struct {
	Goal         models.BudgetGoal   `json:"goal"`
	CurrentSpent float64             `json:"currentSpent"`
	Remaining    float64             `json:"remaining"`
	Progress     float64             `json:"progress"`
	WarningLevel models.WarningLevel `json:"warningLevel"`
}

// BudgetOverview aggregates all active budgets into one blended status.
type BudgetOverview struct {
	ActiveCount  int                 `json:"activeCount"`
	TotalLimit   float64             `json:"totalLimit"`
	TotalSpent   float64             `json:"totalSpent"`
	Remaining    float64             `json:"remaining"`
	Progress     float64             `json:"progress"`
	WarningLevel models.WarningLevel `json:"warningLevel"`
}

// EvaluateBudget computes spent/remaining/progress/warning for one goal.
// Always recomputes against now; nothing about "current month" is cached.
func EvaluateBudget(goal models.BudgetGoal, txs []models.Transaction, now time.Time) BudgetStatus {
	var spent float64
	for _, tx := range txs {
		if tx.Category == goal.Category && tx.Type == models.TypeExpense && sameMonth(tx.Date, now) {
			spent += tx.Amount
		}
	}
	return BudgetStatus{
		Goal:         goal,
		CurrentSpent: spent,
		Remaining:    goal.MonthlyLimit - spent,
		Progress:     progressRatio(spent, goal.MonthlyLimit),
		WarningLevel: warningFor(spent, goal.MonthlyLimit),
	}
}

// EvaluateBudgets evaluates every goal independently, active goals first,
// highest progress first within each group.
func EvaluateBudgets(goals []models.BudgetGoal, txs []models.Transaction, now time.Time) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(goals))
	for _, goal := range goals {
		statuses = append(statuses, EvaluateBudget(goal, txs, now))
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Goal.IsActive != statuses[j].Goal.IsActive {
			return statuses[i].Goal.IsActive
		}
		return statuses[i].Progress > statuses[j].Progress
	})
	return statuses
}

// OverviewBudgets blends all active goals: summed limits, summed spend, and
// a warning level from the summed ratio using the same four-tier thresholds.
func OverviewBudgets(goals []models.BudgetGoal, txs []models.Transaction, now time.Time) BudgetOverview {
	overview := BudgetOverview{WarningLevel: models.WarningSafe}
	for _, goal := range goals {
		if !goal.IsActive {
			continue
		}
		status := EvaluateBudget(goal, txs, now)
		overview.ActiveCount++
		overview.TotalLimit += goal.MonthlyLimit
		overview.TotalSpent += status.CurrentSpent
	}
	overview.Remaining = overview.TotalLimit - overview.TotalSpent
	overview.Progress = progressRatio(overview.TotalSpent, overview.TotalLimit)
	overview.WarningLevel = warningFor(overview.TotalSpent, overview.TotalLimit)
	return overview
}

// progressRatio is spent/limit clamped to [0, 1]. A non-positive limit
// yields 0 rather than NaN or +Inf.
func progressRatio(spent, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	ratio := spent / limit
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

func warningFor(spent, limit float64) models.WarningLevel {
	if limit <= 0 {
		return models.WarningSafe
	}
	return models.WarningLevelFor(spent / limit)
}
