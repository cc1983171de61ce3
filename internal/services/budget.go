package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/engine"
	"github.com/pennyflow/pennyflow-backend/internal/errs"
	"github.com/pennyflow/pennyflow-backend/internal/models"
	"github.com/pennyflow/pennyflow-backend/pkg/logger"
)

type budgetBSStore interface {
	Create(ctx context.Context, uid string, b *models.BudgetGoal) error
	Get(ctx context.Context, uid, budgetID string) (*models.BudgetGoal, error)
	List(ctx context.Context, uid string) ([]models.BudgetGoal, error)
	Update(ctx context.Context, uid string, b *models.BudgetGoal) error
	Delete(ctx context.Context, uid, budgetID string) error
}

type budgetTxLister interface {
	List(ctx context.Context, uid string) ([]models.Transaction, error)
}

type budgetService struct {
	Store budgetBSStore
	Txs   budgetTxLister
	Now   func() time.Time
}

func NewBudgetService(store budgetBSStore, txs budgetTxLister) *budgetService {
	return &budgetService{
		Store: store,
		Txs:   txs,
		Now:   time.Now,
	}
}

func (s *budgetService) CreateBudget(ctx context.Context, uid string, req dto.CreateBudgetRequest) (*models.BudgetGoal, error) {
	log := logger.FromContext(ctx)

	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, errs.NewValidationError("unknown category")
	}
	if req.MonthlyLimit <= 0 {
		return nil, errs.NewValidationError("monthlyLimit must be positive")
	}

	existing, err := s.Store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.Category == category && b.IsActive {
			return nil, errs.NewAlreadyExistsError("an active budget already exists for this category")
		}
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = s.Now()
	}

	b := &models.BudgetGoal{
		BudgetID:     uuid.New().String(),
		Category:     category,
		MonthlyLimit: req.MonthlyLimit,
		StartDate:    startDate,
		IsActive:     true,
	}

	if err := s.Store.Create(ctx, uid, b); err != nil {
		log.Error("failed to create budget", "error", err)
		return nil, err
	}

	log.Info("budget created", "budget_id", b.BudgetID, "category", b.Category, "limit", b.MonthlyLimit)
	return b, nil
}

func (s *budgetService) GetBudget(ctx context.Context, uid, budgetID string) (*models.BudgetGoal, error) {
	return s.Store.Get(ctx, uid, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, uid string) ([]models.BudgetGoal, error) {
	return s.Store.List(ctx, uid)
}

func (s *budgetService) UpdateBudget(ctx context.Context, uid, budgetID string, req dto.UpdateBudgetRequest) (*models.BudgetGoal, error) {
	b, err := s.Store.Get(ctx, uid, budgetID)
	if err != nil {
		return nil, err
	}

	if req.MonthlyLimit != nil {
		if *req.MonthlyLimit <= 0 {
			return nil, errs.NewValidationError("monthlyLimit must be positive")
		}
		b.MonthlyLimit = *req.MonthlyLimit
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.Store.Update(ctx, uid, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, uid, budgetID string) error {
	if _, err := s.Store.Get(ctx, uid, budgetID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, uid, budgetID)
}

// BudgetStatuses evaluates every budget against the current month's spending.
func (s *budgetService) BudgetStatuses(ctx context.Context, uid string) ([]engine.BudgetStatus, error) {
	budgets, err := s.Store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	txs, err := s.Txs.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return engine.EvaluateBudgets(budgets, txs, s.Now()), nil
}

// BudgetOverview blends all active budgets into a single summary.
func (s *budgetService) BudgetOverview(ctx context.Context, uid string) (*engine.BudgetOverview, error) {
	budgets, err := s.Store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	txs, err := s.Txs.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	overview := engine.OverviewBudgets(budgets, txs, s.Now())
	return &overview, nil
}
