package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

// Rule priorities. Higher sorts first.
const (
	priorityBudgetExceeded = 100
	priorityBudgetCritical = 90
	priorityBudgetWarning  = 80
	priorityIncomeChange   = 75
	priorityMonthOverMonth = 70
	priorityCategorySpike  = 68
	priorityRecurringShare = 65
	priorityTopCategory    = 60
	prioritySpendingStreak = 55
	priorityAnomaly        = 50
	prioritySavings        = 45
	priorityNoSpendNone    = 42
	priorityWeekend        = 40
	priorityDailyAverage   = 35
	priorityNoSpendMany    = 30
)

// Numeric rule thresholds. These are currency independent; only display
// strings are formatted with the caller's currency.
const (
	topCategoryWarnShare   = 50.0
	anomalyMinExpenses     = 6
	anomalyMedianFactor    = 3.0
	streakWarnDays         = 7
	savingsMinTransactions = 10
	savingsMinTotal        = 50.0
	savingsCutRate         = 0.20
	weekendWarnShare       = 40.0
	incomeChangeMinPercent = 10.0
	dailyAverageThreshold  = 50.0
	spikeMinPercent        = 30.0
	spikeMinAbsolute       = 20.0
	noSpendManyThreshold   = 5
	noSpendMinDayOfMonth   = 10
)

// InsightInput bundles everything the rule engine needs. All inputs are
// passed explicitly; the engine holds no state between calls.
type InsightInput struct {
	Transactions []models.Transaction
	Budgets      []models.BudgetGoal
	Now          time.Time
	CurrencyCode string
	Format       CurrencyFormatter
}

// GenerateInsights runs every rule, sorts by priority descending, removes
// duplicates by (kind, title) keeping the highest-priority occurrence, and
// optionally truncates to limit (limit <= 0 means no limit). An empty
// transaction list short-circuits to an empty result.
func GenerateInsights(in InsightInput, limit int) []models.Insight {
	if len(in.Transactions) == 0 {
		return nil
	}
	if in.Format == nil {
		in.Format = FormatCurrencyPlain
	}

	g := newInsightContext(in)

	var insights []models.Insight
	insights = append(insights, g.budgetInsights()...)
	insights = append(insights, g.monthOverMonthInsight()...)
	insights = append(insights, g.topCategoryInsight()...)
	insights = append(insights, g.anomalyInsight()...)
	insights = append(insights, g.streakInsight()...)
	insights = append(insights, g.savingsInsight()...)
	insights = append(insights, g.weekendInsight()...)
	insights = append(insights, g.recurringShareInsight()...)
	insights = append(insights, g.incomeChangeInsight()...)
	insights = append(insights, g.dailyAverageInsight()...)
	insights = append(insights, g.categorySpikeInsight()...)
	insights = append(insights, g.noSpendInsights()...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})

	seen := map[string]bool{}
	deduped := insights[:0]
	for _, insight := range insights {
		key := string(insight.Kind) + "|" + insight.Title
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, insight)
	}

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}

// insightContext precomputes the month slices the rules share.
type insightContext struct {
	in InsightInput

	thisMonth         []models.Transaction
	lastMonth         []models.Transaction
	thisMonthExpenses []models.Transaction
	thisExpenseTotal  float64
	lastExpenseTotal  float64
	thisIncomeTotal   float64
	lastIncomeTotal   float64
}

func newInsightContext(in InsightInput) *insightContext {
	g := &insightContext{in: in}
	prev := previousMonth(in.Now)
	for _, tx := range in.Transactions {
		switch {
		case sameMonth(tx.Date, in.Now):
			g.thisMonth = append(g.thisMonth, tx)
			if tx.Type == models.TypeExpense {
				g.thisMonthExpenses = append(g.thisMonthExpenses, tx)
				g.thisExpenseTotal += tx.Amount
			} else {
				g.thisIncomeTotal += tx.Amount
			}
		case sameMonth(tx.Date, prev):
			g.lastMonth = append(g.lastMonth, tx)
			if tx.Type == models.TypeExpense {
				g.lastExpenseTotal += tx.Amount
			} else {
				g.lastIncomeTotal += tx.Amount
			}
		}
	}
	return g
}

func (g *insightContext) format(amount float64) string {
	return g.in.Format(amount, g.in.CurrencyCode)
}

func newInsight(kind models.InsightKind, title, message, icon string, priority int) models.Insight {
	return models.Insight{
		InsightID: uuid.New().String(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Icon:      icon,
		Priority:  priority,
	}
}

// Rule 1: graded status for the two most-stretched active budgets.
func (g *insightContext) budgetInsights() []models.Insight {
	var active []models.BudgetGoal
	for _, budget := range g.in.Budgets {
		if budget.IsActive {
			active = append(active, budget)
		}
	}
	if len(active) == 0 {
		return nil
	}

	statuses := make([]BudgetStatus, 0, len(active))
	for _, budget := range active {
		statuses = append(statuses, EvaluateBudget(budget, g.in.Transactions, g.in.Now))
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Progress > statuses[j].Progress
	})
	if len(statuses) > 2 {
		statuses = statuses[:2]
	}

	var out []models.Insight
	for _, status := range statuses {
		category := status.Goal.Category
		switch status.WarningLevel {
		case models.WarningWarning:
			out = append(out, newInsight(
				models.InsightNeutral,
				"Budget getting tight",
				fmt.Sprintf("%s: %d%% used (%s spent, %s left).",
					category, int(status.Progress*100), g.format(status.CurrentSpent), g.format(status.Remaining)),
				"exclamationmark.triangle.fill",
				priorityBudgetWarning,
			))
		case models.WarningCritical:
			out = append(out, newInsight(
				models.InsightWarning,
				"Budget almost used",
				fmt.Sprintf("%s is at %d%% (%s remaining).",
					category, int(status.Progress*100), g.format(status.Remaining)),
				"exclamationmark.triangle.fill",
				priorityBudgetCritical,
			))
		case models.WarningExceeded:
			out = append(out, newInsight(
				models.InsightWarning,
				"Budget exceeded",
				fmt.Sprintf("%s is over limit by %s.",
					category, g.format(math.Abs(status.Remaining))),
				"xmark.circle.fill",
				priorityBudgetExceeded,
			))
		}
	}
	return out
}

// Rule 2: total spending vs last month.
func (g *insightContext) monthOverMonthInsight() []models.Insight {
	if g.lastExpenseTotal <= 0 {
		return nil
	}
	diff := g.thisExpenseTotal - g.lastExpenseTotal
	pct := (diff / g.lastExpenseTotal) * 100

	if diff <= 0 {
		return []models.Insight{newInsight(
			models.InsightPositive,
			"Spending down",
			fmt.Sprintf("You spent %.1f%% less than last month.", math.Abs(pct)),
			"arrow.down.right.circle.fill",
			priorityMonthOverMonth,
		)}
	}
	return []models.Insight{newInsight(
		models.InsightWarning,
		"Spending up",
		fmt.Sprintf("You spent %.1f%% more than last month.", pct),
		"arrow.up.right.circle.fill",
		priorityMonthOverMonth,
	)}
}

// Rule 3: share of the top expense category this month.
func (g *insightContext) topCategoryInsight() []models.Insight {
	if g.thisExpenseTotal <= 0 {
		return nil
	}
	top := biggestExpenseCategory(g.thisMonthExpenses)
	if top == nil {
		return nil
	}
	pct := (top.Amount / g.thisExpenseTotal) * 100

	kind := models.InsightNeutral
	if pct >= topCategoryWarnShare {
		kind = models.InsightWarning
	}
	return []models.Insight{newInsight(
		kind,
		"Top spending category",
		fmt.Sprintf("%s accounts for %.1f%% of your expenses (%s).", top.Category, pct, g.format(top.Amount)),
		"chart.pie.fill",
		priorityTopCategory,
	)}
}

// Rule 4: single expense far above this month's median.
func (g *insightContext) anomalyInsight() []models.Insight {
	if len(g.thisMonthExpenses) < anomalyMinExpenses {
		return nil
	}

	amounts := make([]float64, len(g.thisMonthExpenses))
	for i, tx := range g.thisMonthExpenses {
		amounts[i] = tx.Amount
	}
	sort.Float64s(amounts)
	median := amounts[len(amounts)/2]
	if median <= 0 {
		return nil
	}

	biggest := g.thisMonthExpenses[0]
	for _, tx := range g.thisMonthExpenses[1:] {
		if tx.Amount > biggest.Amount {
			biggest = tx
		}
	}
	if biggest.Amount < median*anomalyMedianFactor {
		return nil
	}

	return []models.Insight{newInsight(
		models.InsightWarning,
		"Unusually large expense",
		fmt.Sprintf("%s was %s in %s.", biggest.Title, g.format(biggest.Amount), biggest.Category),
		"exclamationmark.bubble.fill",
		priorityAnomaly,
	)}
}

// Rule 5: longest chain of consecutive spending days across all history.
func (g *insightContext) streakInsight() []models.Insight {
	days := map[time.Time]bool{}
	for _, tx := range g.in.Transactions {
		if tx.Type == models.TypeExpense {
			days[dayKey(tx.Date)] = true
		}
	}
	if len(days) < streakWarnDays {
		return nil
	}

	longest := 0
	for day := range days {
		if days[day.AddDate(0, 0, -1)] {
			continue // not the start of a run
		}
		run := 1
		cursor := day.AddDate(0, 0, 1)
		for days[cursor] {
			run++
			cursor = cursor.AddDate(0, 0, 1)
		}
		if run > longest {
			longest = run
		}
	}
	if longest < streakWarnDays {
		return nil
	}

	return []models.Insight{newInsight(
		models.InsightWarning,
		"Spending streak",
		fmt.Sprintf("You've spent money %d days in a row.", longest),
		"flame.fill",
		prioritySpendingStreak,
	)}
}

// Rule 6: high-frequency category worth trimming.
func (g *insightContext) savingsInsight() []models.Insight {
	counts := map[models.Category]int{}
	totals := map[models.Category]float64{}
	var order []models.Category
	for _, tx := range g.thisMonthExpenses {
		if _, seen := counts[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		counts[tx.Category]++
		totals[tx.Category] += tx.Amount
	}

	var pick models.Category
	best := 0
	for _, category := range order {
		if counts[category] >= savingsMinTransactions && counts[category] > best {
			pick = category
			best = counts[category]
		}
	}
	if best == 0 || totals[pick] <= savingsMinTotal {
		return nil
	}

	savings := totals[pick] * savingsCutRate
	return []models.Insight{newInsight(
		models.InsightPositive,
		"Savings opportunity",
		fmt.Sprintf("Cutting %s spending by 20%% would save you %s this month.", pick, g.format(savings)),
		"lightbulb.fill",
		prioritySavings,
	)}
}

// Rule 7: weekend share of this month's spending.
func (g *insightContext) weekendInsight() []models.Insight {
	if g.thisExpenseTotal <= 0 {
		return nil
	}
	var weekend float64
	for _, tx := range g.thisMonthExpenses {
		if wd := tx.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend += tx.Amount
		}
	}
	share := (weekend / g.thisExpenseTotal) * 100
	if share < weekendWarnShare {
		return nil
	}

	return []models.Insight{newInsight(
		models.InsightNeutral,
		"Weekend spending",
		fmt.Sprintf("%.0f%% of this month's spending happens on weekends.", share),
		"calendar.badge.clock",
		priorityWeekend,
	)}
}

// Rule 8: share of this month's expenses that are recurring.
func (g *insightContext) recurringShareInsight() []models.Insight {
	var recurring float64
	for _, tx := range g.thisMonthExpenses {
		if tx.IsRecurring {
			recurring += tx.Amount
		}
	}
	if recurring <= 0 || g.thisExpenseTotal <= 0 {
		return nil
	}

	share := (recurring / g.thisExpenseTotal) * 100
	return []models.Insight{newInsight(
		models.InsightNeutral,
		"Recurring costs",
		fmt.Sprintf("Recurring expenses make up %.1f%% of this month's spending (%s).", share, g.format(recurring)),
		"repeat.circle.fill",
		priorityRecurringShare,
	)}
}

// Rule 9: income vs last month, only when the move is material.
func (g *insightContext) incomeChangeInsight() []models.Insight {
	if g.lastIncomeTotal <= 0 {
		return nil
	}
	pct := ((g.thisIncomeTotal - g.lastIncomeTotal) / g.lastIncomeTotal) * 100
	if math.Abs(pct) < incomeChangeMinPercent {
		return nil
	}

	if pct > 0 {
		return []models.Insight{newInsight(
			models.InsightPositive,
			"Income up",
			fmt.Sprintf("Your income is %.1f%% higher than last month.", pct),
			"arrow.up.circle.fill",
			priorityIncomeChange,
		)}
	}
	return []models.Insight{newInsight(
		models.InsightWarning,
		"Income down",
		fmt.Sprintf("Your income is %.1f%% lower than last month.", math.Abs(pct)),
		"arrow.down.circle.fill",
		priorityIncomeChange,
	)}
}

// Rule 10: average spend per day of the full month.
func (g *insightContext) dailyAverageInsight() []models.Insight {
	average := g.thisExpenseTotal / float64(daysInMonth(g.in.Now))
	if average <= dailyAverageThreshold {
		return nil
	}

	return []models.Insight{newInsight(
		models.InsightNeutral,
		"Daily spending",
		fmt.Sprintf("You spend %s per day on average this month.", g.format(average)),
		"chart.bar.fill",
		priorityDailyAverage,
	)}
}

// Rule 11: the single category with the sharpest month-over-month increase.
func (g *insightContext) categorySpikeInsight() []models.Insight {
	thisTotals := map[models.Category]float64{}
	for _, tx := range g.thisMonthExpenses {
		thisTotals[tx.Category] += tx.Amount
	}
	lastTotals := map[models.Category]float64{}
	for _, tx := range g.lastMonth {
		if tx.Type == models.TypeExpense {
			lastTotals[tx.Category] += tx.Amount
		}
	}

	var pick models.Category
	var pickPct, pickIncrease float64
	found := false
	for _, category := range models.Categories {
		last := lastTotals[category]
		this := thisTotals[category]
		if last <= 0 || this <= 0 {
			continue
		}
		increase := this - last
		pct := (increase / last) * 100
		if pct <= spikeMinPercent || increase <= spikeMinAbsolute {
			continue
		}
		if !found || pct > pickPct {
			pick, pickPct, pickIncrease = category, pct, increase
			found = true
		}
	}
	if !found {
		return nil
	}

	return []models.Insight{newInsight(
		models.InsightWarning,
		"Category spike",
		fmt.Sprintf("%s spending is up %.1f%% vs last month (+%s).", pick, pickPct, g.format(pickIncrease)),
		"chart.line.uptrend.xyaxis",
		priorityCategorySpike,
	)}
}

// Rule 12: days without any expense this month.
func (g *insightContext) noSpendInsights() []models.Insight {
	spendDays := map[time.Time]bool{}
	for _, tx := range g.thisMonthExpenses {
		spendDays[dayKey(tx.Date)] = true
	}
	dayOfMonth := g.in.Now.Day()
	noSpendDays := dayOfMonth - len(spendDays)

	if noSpendDays >= noSpendManyThreshold {
		return []models.Insight{newInsight(
			models.InsightPositive,
			"Great self-control",
			fmt.Sprintf("%d spend-free days this month.", noSpendDays),
			"checkmark.seal.fill",
			priorityNoSpendMany,
		)}
	}
	if noSpendDays == 0 && dayOfMonth >= noSpendMinDayOfMonth {
		return []models.Insight{newInsight(
			models.InsightWarning,
			"No spend-free days",
			fmt.Sprintf("You've spent money every day for %d days.", dayOfMonth),
			"exclamationmark.circle.fill",
			priorityNoSpendNone,
		)}
	}
	return nil
}
