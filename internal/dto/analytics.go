package dto

import (
	"github.com/pennyflow/pennyflow-backend/internal/engine"
	"github.com/pennyflow/pennyflow-backend/internal/models"
)

type TransactionsResult struct {
	Transactions []models.Transaction `json:"transactions"`
	TotalCount   int                  `json:"totalCount"`
}

type CategoryChartResult struct {
	Points []engine.CategoryChartPoint `json:"points"`
}

type MonthlyChartResult struct {
	Points []engine.MonthlyChartPoint `json:"points"`
}

type BalanceChartResult struct {
	Points []engine.BalancePoint `json:"points"`
}

type InsightsResult struct {
	Insights []models.Insight `json:"insights"`
}

// OverviewResult is the aggregate payload behind the app's home screen.
type OverviewResult struct {
	Statistics engine.Statistics     `json:"statistics"`
	Budgets    engine.BudgetOverview `json:"budgets"`
	Insights   []models.Insight      `json:"insights"`
}

type BudgetStatusResult struct {
	Budgets []engine.BudgetStatus `json:"budgets"`
}
