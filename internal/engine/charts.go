package engine

import (
	"sort"
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

const monthLabelLayout = "Jan 2006"

// CategoryChartPoint is one slice of the category breakdown chart.
type CategoryChartPoint struct {
	Category   models.Category `json:"category"`
	Amount     float64         `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// MonthlyChartPoint is one bucket of the income/expense comparison chart.
type MonthlyChartPoint struct {
	Month   string    `json:"month"`
	Date    time.Time `json:"date"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
}

// BalancePoint is one point of the running-balance line. One point is
// emitted per transaction, so same-day transactions produce several points.
type BalancePoint struct {
	Date    time.Time `json:"date"`
	Balance float64   `json:"balance"`
}

// CategoryChartData groups expense transactions by category and computes each
// category's share of the total. The caller decides the scope of txs (all
// time or filtered). Returns an empty series when total expense is zero.
func CategoryChartData(txs []models.Transaction) []CategoryChartPoint {
	totals := map[models.Category]float64{}
	var totalExpense float64
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		totals[tx.Category] += tx.Amount
		totalExpense += tx.Amount
	}
	if totalExpense <= 0 {
		return nil
	}

	points := make([]CategoryChartPoint, 0, len(totals))
	for category, amount := range totals {
		points = append(points, CategoryChartPoint{
			Category:   category,
			Amount:     amount,
			Percentage: (amount / totalExpense) * 100,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Amount != points[j].Amount {
			return points[i].Amount > points[j].Amount
		}
		return points[i].Category < points[j].Category
	})
	return points
}

// MonthlyChartData buckets all transactions by calendar month, sums income
// and expense per bucket, and returns the most recent six buckets in
// ascending order.
func MonthlyChartData(txs []models.Transaction) []MonthlyChartPoint {
	buckets := map[time.Time]*MonthlyChartPoint{}
	for _, tx := range txs {
		key := time.Date(tx.Date.Year(), tx.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		point, ok := buckets[key]
		if !ok {
			point = &MonthlyChartPoint{
				Month: key.Format(monthLabelLayout),
				Date:  key,
			}
			buckets[key] = point
		}
		switch tx.Type {
		case models.TypeIncome:
			point.Income += tx.Amount
		case models.TypeExpense:
			point.Expense += tx.Amount
		}
	}

	points := make([]MonthlyChartPoint, 0, len(buckets))
	for _, point := range buckets {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	if len(points) > 6 {
		points = points[len(points)-6:]
	}
	return points
}

// BalanceOverTimeData sorts all transactions by date and emits a cumulative
// running balance: income adds, expense subtracts. Not resampled per day.
func BalanceOverTimeData(txs []models.Transaction) []BalancePoint {
	if len(txs) == 0 {
		return nil
	}

	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]BalancePoint, 0, len(sorted))
	var balance float64
	for _, tx := range sorted {
		if tx.Type == models.TypeIncome {
			balance += tx.Amount
		} else {
			balance -= tx.Amount
		}
		points = append(points, BalancePoint{Date: tx.Date, Balance: balance})
	}
	return points
}
