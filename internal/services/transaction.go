package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/errs"
	"github.com/pennyflow/pennyflow-backend/internal/models"
	"github.com/pennyflow/pennyflow-backend/pkg/logger"
)

type txTSStore interface {
	Create(ctx context.Context, uid string, t *models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	List(ctx context.Context, uid string) ([]models.Transaction, error)
	Update(ctx context.Context, uid string, t *models.Transaction) error
	Delete(ctx context.Context, uid, transactionID string) error
}

type txFileStore interface {
	DeleteFile(ctx context.Context, uid, relativePath string) error
}

type transactionService struct {
	Store txTSStore
	Files txFileStore
	Now   func() time.Time
}

func NewTransactionService(store txTSStore, files txFileStore) *transactionService {
	return &transactionService{
		Store: store,
		Files: files,
		Now:   time.Now,
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return nil, errs.NewValidationError("title is required")
	}
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	date := req.Date
	if date.IsZero() {
		date = s.Now()
	}

	t := &models.Transaction{
		TransactionID: uuid.New().String(),
		Title:         strings.TrimSpace(req.Title),
		Amount:        req.Amount,
		Date:          date,
		Category:      models.ParseCategory(req.Category),
		Type:          models.ParseTransactionType(req.Type),
		Notes:         req.Notes,
	}

	if err := s.Store.Create(ctx, uid, t); err != nil {
		log.Error("failed to create transaction", "error", err)
		return nil, err
	}

	log.Info("transaction created", "transaction_id", t.TransactionID, "category", t.Category, "type", t.Type)
	return t, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	return s.Store.Get(ctx, uid, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, uid string, filters dto.TransactionFilters) (dto.TransactionsResult, error) {
	txs, err := s.Store.List(ctx, uid)
	if err != nil {
		return dto.TransactionsResult{}, err
	}

	filtered := applyFilters(txs, filters, s.Now())
	sortTransactions(filtered, filters.Sort)

	return dto.TransactionsResult{
		Transactions: filtered,
		TotalCount:   len(filtered),
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	t, err := s.Store.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errs.NewValidationError("title cannot be empty")
		}
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errs.NewValidationError("amount must be positive")
		}
		t.Amount = *req.Amount
	}
	if req.Date != nil {
		t.Date = *req.Date
	}
	if req.Category != nil {
		t.Category = models.ParseCategory(*req.Category)
	}
	if req.Type != nil {
		t.Type = models.ParseTransactionType(*req.Type)
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	if err := s.Store.Update(ctx, uid, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, uid, transactionID string) error {
	log := logger.FromContext(ctx)

	t, err := s.Store.Get(ctx, uid, transactionID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, uid, transactionID); err != nil {
		return err
	}

	// Cascade to attachment files. The record is already gone, so file
	// failures are logged rather than surfaced.
	for _, a := range t.Attachments {
		if err := s.Files.DeleteFile(ctx, uid, a.RelativePath); err != nil {
			log.Warn("failed to delete attachment file",
				"transaction_id", transactionID,
				"attachment_id", a.AttachmentID,
				"error", err)
		}
	}

	log.Info("transaction deleted", "transaction_id", transactionID, "attachments", len(t.Attachments))
	return nil
}

func (s *transactionService) AddAttachment(ctx context.Context, uid, transactionID string, req dto.AddAttachmentRequest) (*models.Transaction, error) {
	if strings.TrimSpace(req.FileName) == "" || strings.TrimSpace(req.RelativePath) == "" {
		return nil, errs.NewValidationError("fileName and relativePath are required")
	}

	t, err := s.Store.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}

	t.Attachments = append(t.Attachments, models.Attachment{
		AttachmentID: uuid.New().String(),
		FileName:     req.FileName,
		RelativePath: req.RelativePath,
		CreatedAt:    time.Now(),
	})

	if err := s.Store.Update(ctx, uid, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *transactionService) RemoveAttachment(ctx context.Context, uid, transactionID, attachmentID string) (*models.Transaction, error) {
	t, err := s.Store.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}

	kept := t.Attachments[:0]
	var removed *models.Attachment
	for _, a := range t.Attachments {
		if a.AttachmentID == attachmentID {
			copied := a
			removed = &copied
			continue
		}
		kept = append(kept, a)
	}
	if removed == nil {
		return nil, errs.NewNotFoundError("attachment not found")
	}
	t.Attachments = kept

	if err := s.Store.Update(ctx, uid, t); err != nil {
		return nil, err
	}

	if err := s.Files.DeleteFile(ctx, uid, removed.RelativePath); err != nil {
		logger.FromContext(ctx).Warn("failed to delete attachment file",
			"transaction_id", transactionID,
			"attachment_id", attachmentID,
			"error", err)
	}
	return t, nil
}

// applyFilters narrows the listing. All predicates are conjunctive; zero
// values pass everything through.
func applyFilters(txs []models.Transaction, f dto.TransactionFilters, now time.Time) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var categories map[string]bool
	if len(f.Categories) > 0 {
		categories = make(map[string]bool, len(f.Categories))
		for _, c := range f.Categories {
			categories[c] = true
		}
	}

	start, end := resolveDateRange(f, now)

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Type != "" && string(t.Type) != f.Type {
			continue
		}
		if categories != nil && !categories[string(t.Category)] {
			continue
		}
		if start != nil && t.Date.Before(*start) {
			continue
		}
		if end != nil && !t.Date.Before(*end) {
			continue
		}
		if f.MinAmount != nil && t.Amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && t.Amount > *f.MaxAmount {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t models.Transaction, search string) bool {
	if strings.Contains(strings.ToLower(t.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Notes), search) {
		return true
	}
	for _, tag := range t.Tags() {
		if strings.Contains(tag, search) {
			return true
		}
	}
	return false
}

// resolveDateRange maps a preset to a half-open interval [start, end).
func resolveDateRange(f dto.TransactionFilters, now time.Time) (*time.Time, *time.Time) {
	switch f.DateRange {
	case dto.DateRangeToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1)
		return &start, &end
	case dto.DateRangeThisWeek:
		// Weeks start on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
		end := start.AddDate(0, 0, 7)
		return &start, &end
	case dto.DateRangeThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		return &start, &end
	case dto.DateRangeLastMonth:
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start := end.AddDate(0, -1, 0)
		return &start, &end
	case dto.DateRangeThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0)
		return &start, &end
	case dto.DateRangeCustom:
		return f.CustomStart, f.CustomEnd
	default:
		return nil, nil
	}
}

func sortTransactions(txs []models.Transaction, order string) {
	switch order {
	case dto.SortDateOldest:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
	case dto.SortAmountHighest:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Amount > txs[j].Amount })
	case dto.SortAmountLowest:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Amount < txs[j].Amount })
	default:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	}
}
