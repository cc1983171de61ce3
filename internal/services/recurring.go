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

type recurringRSStore interface {
	Create(ctx context.Context, uid string, r *models.RecurringTransaction) error
	Get(ctx context.Context, uid, recurringID string) (*models.RecurringTransaction, error)
	List(ctx context.Context, uid string) ([]models.RecurringTransaction, error)
	Update(ctx context.Context, uid string, r *models.RecurringTransaction) error
	Delete(ctx context.Context, uid, recurringID string) error
	UpdateBatch(ctx context.Context, uid string, defs []models.RecurringTransaction) error
}

type recurringTxWriter interface {
	CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error
}

type recurringService struct {
	Store  recurringRSStore
	Txs    recurringTxWriter
	Policy engine.CatchUpPolicy
	Now    func() time.Time
	NewID  func() string
}

func NewRecurringService(store recurringRSStore, txs recurringTxWriter, policy engine.CatchUpPolicy) *recurringService {
	return &recurringService{
		Store:  store,
		Txs:    txs,
		Policy: policy,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

func (s *recurringService) CreateRecurring(ctx context.Context, uid string, req dto.CreateRecurringRequest) (*models.RecurringTransaction, error) {
	log := logger.FromContext(ctx)

	if req.Title == "" {
		return nil, errs.NewValidationError("title is required")
	}
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	frequency := models.RecurringFrequency(req.Frequency)
	if !frequency.Valid() {
		return nil, errs.NewValidationError("unknown frequency")
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = s.Now()
	}

	r := &models.RecurringTransaction{
		RecurringID: s.NewID(),
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    models.ParseCategory(req.Category),
		Type:        models.ParseTransactionType(req.Type),
		Frequency:   frequency,
		StartDate:   startDate,
		Notes:       req.Notes,
		IsActive:    true,
	}

	if err := s.Store.Create(ctx, uid, r); err != nil {
		log.Error("failed to create recurring transaction", "error", err)
		return nil, err
	}

	log.Info("recurring transaction created", "recurring_id", r.RecurringID, "frequency", r.Frequency)
	return r, nil
}

func (s *recurringService) GetRecurring(ctx context.Context, uid, recurringID string) (*models.RecurringTransaction, error) {
	return s.Store.Get(ctx, uid, recurringID)
}

func (s *recurringService) ListRecurring(ctx context.Context, uid string) ([]models.RecurringTransaction, error) {
	return s.Store.List(ctx, uid)
}

func (s *recurringService) UpdateRecurring(ctx context.Context, uid, recurringID string, req dto.UpdateRecurringRequest) (*models.RecurringTransaction, error) {
	r, err := s.Store.Get(ctx, uid, recurringID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, errs.NewValidationError("title cannot be empty")
		}
		r.Title = *req.Title
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errs.NewValidationError("amount must be positive")
		}
		r.Amount = *req.Amount
	}
	if req.Frequency != nil {
		frequency := models.RecurringFrequency(*req.Frequency)
		if !frequency.Valid() {
			return nil, errs.NewValidationError("unknown frequency")
		}
		r.Frequency = frequency
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}

	if err := s.Store.Update(ctx, uid, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *recurringService) DeleteRecurring(ctx context.Context, uid, recurringID string) error {
	if _, err := s.Store.Get(ctx, uid, recurringID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, uid, recurringID)
}

// Upcoming previews the next occurrence of every active definition without
// writing anything.
func (s *recurringService) Upcoming(ctx context.Context, uid string) ([]dto.UpcomingOccurrence, error) {
	defs, err := s.Store.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	out := make([]dto.UpcomingOccurrence, 0, len(defs))
	for _, def := range defs {
		if !def.IsActive || !def.Frequency.Valid() {
			continue
		}
		due := def.NextDueDate()
		out = append(out, dto.UpcomingOccurrence{
			RecurringID: def.RecurringID,
			Title:       def.Title,
			Amount:      def.Amount,
			Category:    string(def.Category),
			Type:        string(def.Type),
			DueDate:     due,
			Overdue:     !due.After(now),
		})
	}
	return out, nil
}

// ProcessDue materializes every due definition and persists both the new
// transactions and the advanced markers. Meant to be driven by a single
// caller per user at a time.
func (s *recurringService) ProcessDue(ctx context.Context, uid string) (dto.ProcessRecurringResult, error) {
	log := logger.FromContext(ctx)

	defs, err := s.Store.List(ctx, uid)
	if err != nil {
		return dto.ProcessRecurringResult{}, err
	}

	result := engine.ProcessRecurring(defs, s.Now(), s.Policy, s.NewID)
	if len(result.Generated) == 0 {
		return dto.ProcessRecurringResult{}, nil
	}

	if err := s.Txs.CreateBatch(ctx, uid, result.Generated); err != nil {
		return dto.ProcessRecurringResult{}, err
	}
	if err := s.Store.UpdateBatch(ctx, uid, result.Updated); err != nil {
		return dto.ProcessRecurringResult{}, err
	}

	log.Info("recurring transactions processed", "generated", len(result.Generated))
	return dto.ProcessRecurringResult{GeneratedCount: len(result.Generated)}, nil
}
