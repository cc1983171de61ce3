package services

import (
	"context"
	"sync"
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/engine"
	"github.com/pennyflow/pennyflow-backend/internal/models"
	"github.com/pennyflow/pennyflow-backend/pkg/logger"
)

type analyticsTxLister interface {
	List(ctx context.Context, uid string) ([]models.Transaction, error)
}

type analyticsBudgetLister interface {
	List(ctx context.Context, uid string) ([]models.BudgetGoal, error)
}

type analyticsUserGetter interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type analyticsService struct {
	Txs     analyticsTxLister
	Budgets analyticsBudgetLister
	Users   analyticsUserGetter
	Now     func() time.Time

	mu      sync.Mutex
	sources map[string]*engine.SnapshotSource
}

func NewAnalyticsService(txs analyticsTxLister, budgets analyticsBudgetLister, users analyticsUserGetter) *analyticsService {
	return &analyticsService{
		Txs:     txs,
		Budgets: budgets,
		Users:   users,
		Now:     time.Now,
		sources: make(map[string]*engine.SnapshotSource),
	}
}

func (s *analyticsService) source(uid string) *engine.SnapshotSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.sources[uid]
	if !ok {
		src = engine.NewSnapshotSource()
		s.sources[uid] = src
	}
	return src
}

// refresh loads the user's history and publishes it as the current snapshot.
func (s *analyticsService) refresh(ctx context.Context, uid string) (engine.Snapshot, error) {
	txs, err := s.Txs.List(ctx, uid)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return s.source(uid).Replace(txs), nil
}

func (s *analyticsService) Statistics(ctx context.Context, uid string) (*engine.Statistics, error) {
	snap, err := s.refresh(ctx, uid)
	if err != nil {
		return nil, err
	}
	stats := engine.CalculateStatistics(snap.Transactions, s.Now())
	return &stats, nil
}

func (s *analyticsService) CategoryChart(ctx context.Context, uid string) (dto.CategoryChartResult, error) {
	snap, err := s.refresh(ctx, uid)
	if err != nil {
		return dto.CategoryChartResult{}, err
	}
	current := currentMonth(snap.Transactions, s.Now())
	return dto.CategoryChartResult{Points: engine.CategoryChartData(current)}, nil
}

func (s *analyticsService) MonthlyChart(ctx context.Context, uid string) (dto.MonthlyChartResult, error) {
	snap, err := s.refresh(ctx, uid)
	if err != nil {
		return dto.MonthlyChartResult{}, err
	}
	return dto.MonthlyChartResult{Points: engine.MonthlyChartData(snap.Transactions)}, nil
}

func (s *analyticsService) BalanceChart(ctx context.Context, uid string) (dto.BalanceChartResult, error) {
	snap, err := s.refresh(ctx, uid)
	if err != nil {
		return dto.BalanceChartResult{}, err
	}
	return dto.BalanceChartResult{Points: engine.BalanceOverTimeData(snap.Transactions)}, nil
}

func (s *analyticsService) Insights(ctx context.Context, uid string, limit int) (dto.InsightsResult, error) {
	snap, err := s.refresh(ctx, uid)
	if err != nil {
		return dto.InsightsResult{}, err
	}
	budgets, currencyCode, err := s.insightContext(ctx, uid)
	if err != nil {
		return dto.InsightsResult{}, err
	}

	insights := engine.GenerateInsights(engine.InsightInput{
		Transactions: snap.Transactions,
		Budgets:      budgets,
		Now:          s.Now(),
		CurrencyCode: currencyCode,
	}, limit)

	return dto.InsightsResult{Insights: insights}, nil
}

// GetOverview computes statistics, budget overview and insights from one
// consistent snapshot. If a concurrent refresh replaces the snapshot while
// computing, the work is redone against the newer one.
func (s *analyticsService) GetOverview(ctx context.Context, uid string) (*dto.OverviewResult, error) {
	log := logger.FromContext(ctx)

	if _, err := s.refresh(ctx, uid); err != nil {
		return nil, err
	}
	budgets, currencyCode, err := s.insightContext(ctx, uid)
	if err != nil {
		return nil, err
	}

	src := s.source(uid)
	now := s.Now()
	for {
		snap := src.Take()

		overview := &dto.OverviewResult{
			Statistics: engine.CalculateStatistics(snap.Transactions, now),
			Budgets:    engine.OverviewBudgets(budgets, snap.Transactions, now),
			Insights: engine.GenerateInsights(engine.InsightInput{
				Transactions: snap.Transactions,
				Budgets:      budgets,
				Now:          now,
				CurrencyCode: currencyCode,
			}, 0),
		}

		if src.StillCurrent(snap) {
			return overview, nil
		}
		log.Debug("overview snapshot went stale, recomputing", "revision", snap.Revision)
	}
}

func (s *analyticsService) insightContext(ctx context.Context, uid string) ([]models.BudgetGoal, string, error) {
	budgets, err := s.Budgets.List(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	currencyCode := defaultCurrencyCode
	if user, err := s.Users.GetUser(ctx, uid); err == nil && user != nil && user.CurrencyCode != "" {
		currencyCode = user.CurrencyCode
	}
	return budgets, currencyCode, nil
}

func currentMonth(txs []models.Transaction, now time.Time) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.Year() == now.Year() && t.Date.Month() == now.Month() {
			out = append(out, t)
		}
	}
	return out
}
