package engine

import (
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

// CategoryAmount pairs a category with a summed amount.
type CategoryAmount struct {
	Category models.Category `json:"category"`
	Amount   float64         `json:"amount"`
}

// CategoryCount pairs a category with a transaction count.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

// Statistics holds the current-month aggregates for the dashboard. Trend
// percentages are nil when the prior month has no base to compare against.
type Statistics struct {
	TotalIncome          float64         `json:"totalIncome"`
	TotalExpenses        float64         `json:"totalExpenses"`
	Balance              float64         `json:"balance"`
	AverageDailySpending float64         `json:"averageDailySpending"`
	TransactionCount     int             `json:"transactionCount"`
	BiggestExpense       *CategoryAmount `json:"biggestExpense,omitempty"`
	MostUsedCategory     *CategoryCount  `json:"mostUsedCategory,omitempty"`
	IncomeTrend          *float64        `json:"incomeTrend,omitempty"`
	ExpenseTrend         *float64        `json:"expenseTrend,omitempty"`
	SpendingStreak       int             `json:"spendingStreak"`
}

// CalculateStatistics computes the current-month aggregates over a snapshot
// of transactions. "Current" always means the calendar month containing now.
func CalculateStatistics(txs []models.Transaction, now time.Time) Statistics {
	var current, previous []models.Transaction
	prev := previousMonth(now)
	for _, tx := range txs {
		switch {
		case sameMonth(tx.Date, now):
			current = append(current, tx)
		case sameMonth(tx.Date, prev):
			previous = append(previous, tx)
		}
	}

	stats := Statistics{
		TotalIncome:      sumByType(current, models.TypeIncome),
		TotalExpenses:    sumByType(current, models.TypeExpense),
		TransactionCount: len(current),
	}
	stats.Balance = stats.TotalIncome - stats.TotalExpenses

	daysElapsed := now.Day()
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	stats.AverageDailySpending = stats.TotalExpenses / float64(daysElapsed)

	stats.BiggestExpense = biggestExpenseCategory(current)
	stats.MostUsedCategory = mostUsedExpenseCategory(current)

	stats.IncomeTrend = percentChange(stats.TotalIncome, sumByType(previous, models.TypeIncome))
	stats.ExpenseTrend = percentChange(stats.TotalExpenses, sumByType(previous, models.TypeExpense))

	stats.SpendingStreak = spendingStreak(current, now)
	return stats
}

func sumByType(txs []models.Transaction, typ models.TransactionType) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == typ {
			total += tx.Amount
		}
	}
	return total
}

// percentChange returns the change of current vs base as a percentage, or
// nil when base is zero (a ±∞% or 0% figure would mislead).
func percentChange(current, base float64) *float64 {
	if base <= 0 {
		return nil
	}
	pct := ((current - base) / base) * 100
	return &pct
}

// biggestExpenseCategory returns the category with the highest summed expense
// amount, or nil when there are no expenses. Ties resolve to the category
// first encountered in input order.
func biggestExpenseCategory(txs []models.Transaction) *CategoryAmount {
	totals := map[models.Category]float64{}
	var order []models.Category
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.Amount
	}
	if len(order) == 0 {
		return nil
	}
	top := order[0]
	for _, c := range order[1:] {
		if totals[c] > totals[top] {
			top = c
		}
	}
	return &CategoryAmount{Category: top, Amount: totals[top]}
}

// mostUsedExpenseCategory returns the category with the most expense
// transactions, or nil when there are none. Ties resolve to the category
// first encountered in input order.
func mostUsedExpenseCategory(txs []models.Transaction) *CategoryCount {
	counts := map[models.Category]int{}
	var order []models.Category
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		if _, seen := counts[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		counts[tx.Category]++
	}
	if len(order) == 0 {
		return nil
	}
	top := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[top] {
			top = c
		}
	}
	return &CategoryCount{Category: top, Count: counts[top]}
}

// spendingStreak counts consecutive calendar days ending at now where each
// day contains at least one expense. Today is a non-breaking "continue" day;
// a gap of more than one day terminates the scan.
func spendingStreak(txs []models.Transaction, now time.Time) int {
	days := map[time.Time]bool{}
	for _, tx := range txs {
		if tx.Type == models.TypeExpense {
			days[dayKey(tx.Date)] = true
		}
	}

	// Today keeps the chain alive but is never counted itself; the scan
	// starts at yesterday either way.
	streak := 0
	cursor := dayKey(now).AddDate(0, 0, -1)
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
