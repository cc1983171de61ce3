package engine

import (
	"testing"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

func TestEvaluateBudgetWarningTier(t *testing.T) {
	goal := models.BudgetGoal{Category: models.CategoryFood, MonthlyLimit: 500, IsActive: true}
	txs := []models.Transaction{expense(375, models.CategoryFood, testNow)}

	status := EvaluateBudget(goal, txs, testNow)

	if status.CurrentSpent != 375 {
		t.Errorf("current spent: got %v, want 375", status.CurrentSpent)
	}
	if status.Progress != 0.75 {
		t.Errorf("progress: got %v, want 0.75", status.Progress)
	}
	if status.WarningLevel != models.WarningWarning {
		t.Errorf("warning level: got %v, want warning", status.WarningLevel)
	}
	if status.Remaining != 125 {
		t.Errorf("remaining: got %v, want 125", status.Remaining)
	}
}

func TestEvaluateBudgetExceededClampsProgress(t *testing.T) {
	goal := models.BudgetGoal{Category: models.CategoryFood, MonthlyLimit: 100, IsActive: true}
	txs := []models.Transaction{expense(150, models.CategoryFood, testNow)}

	status := EvaluateBudget(goal, txs, testNow)

	if status.Progress != 1.0 {
		t.Errorf("progress: got %v, want 1.0", status.Progress)
	}
	if status.WarningLevel != models.WarningExceeded {
		t.Errorf("warning level: got %v, want exceeded", status.WarningLevel)
	}
	if status.Remaining != -50 {
		t.Errorf("remaining: got %v, want -50", status.Remaining)
	}
}

func TestEvaluateBudgetIgnoresOtherCategoriesTypesAndMonths(t *testing.T) {
	goal := models.BudgetGoal{Category: models.CategoryFood, MonthlyLimit: 100, IsActive: true}
	txs := []models.Transaction{
		expense(10, models.CategoryFood, testNow),
		expense(99, models.CategoryTransport, testNow),
		expense(99, models.CategoryFood, testNow.AddDate(0, -1, 0)),
		income(99, testNow),
	}
	status := EvaluateBudget(goal, txs, testNow)
	if status.CurrentSpent != 10 {
		t.Errorf("current spent: got %v, want 10", status.CurrentSpent)
	}
}

func TestEvaluateBudgetZeroLimit(t *testing.T) {
	goal := models.BudgetGoal{Category: models.CategoryFood, MonthlyLimit: 0, IsActive: true}
	txs := []models.Transaction{expense(10, models.CategoryFood, testNow)}

	status := EvaluateBudget(goal, txs, testNow)
	if status.Progress != 0 {
		t.Errorf("progress: got %v, want 0", status.Progress)
	}
	if status.WarningLevel != models.WarningSafe {
		t.Errorf("warning level: got %v, want safe", status.WarningLevel)
	}
}

func TestEvaluateBudgetsOrdersActiveByProgress(t *testing.T) {
	goals := []models.BudgetGoal{
		{BudgetID: "low", Category: models.CategoryFood, MonthlyLimit: 1000, IsActive: true},
		{BudgetID: "inactive", Category: models.CategoryBills, MonthlyLimit: 10, IsActive: false},
		{BudgetID: "high", Category: models.CategoryTransport, MonthlyLimit: 100, IsActive: true},
	}
	txs := []models.Transaction{
		expense(100, models.CategoryFood, testNow),
		expense(90, models.CategoryTransport, testNow),
	}

	statuses := EvaluateBudgets(goals, txs, testNow)
	if len(statuses) != 3 {
		t.Fatalf("statuses: got %d, want 3", len(statuses))
	}
	if statuses[0].Goal.BudgetID != "high" || statuses[1].Goal.BudgetID != "low" {
		t.Errorf("active ordering wrong: %s, %s", statuses[0].Goal.BudgetID, statuses[1].Goal.BudgetID)
	}
	if statuses[2].Goal.BudgetID != "inactive" {
		t.Errorf("inactive goal should sort last, got %s", statuses[2].Goal.BudgetID)
	}
}

func TestOverviewBudgetsBlendsActiveGoals(t *testing.T) {
	goals := []models.BudgetGoal{
		{Category: models.CategoryFood, MonthlyLimit: 500, IsActive: true},
		{Category: models.CategoryTransport, MonthlyLimit: 500, IsActive: true},
		{Category: models.CategoryBills, MonthlyLimit: 999, IsActive: false},
	}
	txs := []models.Transaction{
		expense(400, models.CategoryFood, testNow),
		expense(550, models.CategoryTransport, testNow),
	}

	overview := OverviewBudgets(goals, txs, testNow)

	if overview.ActiveCount != 2 {
		t.Errorf("active count: got %d, want 2", overview.ActiveCount)
	}
	if overview.TotalLimit != 1000 || overview.TotalSpent != 950 {
		t.Errorf("totals: got limit %v spent %v", overview.TotalLimit, overview.TotalSpent)
	}
	if overview.Progress != 0.95 {
		t.Errorf("progress: got %v, want 0.95", overview.Progress)
	}
	if overview.WarningLevel != models.WarningCritical {
		t.Errorf("warning level: got %v, want critical", overview.WarningLevel)
	}
}

func TestOverviewBudgetsEmpty(t *testing.T) {
	overview := OverviewBudgets(nil, nil, testNow)
	if overview.WarningLevel != models.WarningSafe || overview.Progress != 0 {
		t.Errorf("empty overview: got %+v", overview)
	}
}
