package services

import (
	"context"
	"testing"
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/errs"
	"github.com/pennyflow/pennyflow-backend/internal/models"
	"github.com/pennyflow/pennyflow-backend/pkg/helpers"
)

type stubTxStore struct {
	txs map[string]*models.Transaction

	lastCreated *models.Transaction
	lastUpdated *models.Transaction
	lastDeleted string
	listErr     error
}

func newStubTxStore(txs ...models.Transaction) *stubTxStore {
	s := &stubTxStore{txs: map[string]*models.Transaction{}}
	for i := range txs {
		t := txs[i]
		s.txs[t.TransactionID] = &t
	}
	return s
}

func (s *stubTxStore) Create(_ context.Context, _ string, t *models.Transaction) error {
	s.lastCreated = t
	s.txs[t.TransactionID] = t
	return nil
}

func (s *stubTxStore) Get(_ context.Context, _ string, transactionID string) (*models.Transaction, error) {
	t, ok := s.txs[transactionID]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	copied := *t
	return &copied, nil
}

func (s *stubTxStore) List(_ context.Context, _ string) ([]models.Transaction, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTxStore) Update(_ context.Context, _ string, t *models.Transaction) error {
	s.lastUpdated = t
	s.txs[t.TransactionID] = t
	return nil
}

func (s *stubTxStore) Delete(_ context.Context, _ string, transactionID string) error {
	s.lastDeleted = transactionID
	delete(s.txs, transactionID)
	return nil
}

type stubFileStore struct {
	deleted []string
	err     error
}

func (s *stubFileStore) DeleteFile(_ context.Context, uid, relativePath string) error {
	s.deleted = append(s.deleted, uid+"/"+relativePath)
	return s.err
}

func newTxService(store *stubTxStore, now time.Time) *transactionService {
	svc := NewTransactionService(store, &stubFileStore{})
	svc.Now = func() time.Time { return now }
	return svc
}

var svcNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func tx(id, title string, amount float64, typ models.TransactionType, category models.Category, date time.Time) models.Transaction {
	return models.Transaction{
		TransactionID: id,
		Title:         title,
		Amount:        amount,
		Type:          typ,
		Category:      category,
		Date:          date,
	}
}

func TestCreateTransactionParsesAndDefaults(t *testing.T) {
	store := newStubTxStore()
	svc := newTxService(store, svcNow)

	created, err := svc.CreateTransaction(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{
		Title:    "  Groceries  ",
		Amount:   42.50,
		Category: "nonsense",
		Type:     "gibberish",
	})
	if err != nil {
		t.Fatalf("CreateTransaction returned error: %v", err)
	}

	if created.TransactionID == "" {
		t.Fatalf("expected generated transaction id")
	}
	if created.Title != "Groceries" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if created.Category != models.CategoryOther {
		t.Fatalf("unknown category should fall back to other, got %s", created.Category)
	}
	if created.Type != models.TypeExpense {
		t.Fatalf("unknown type should fall back to expense, got %s", created.Type)
	}
	if !created.Date.Equal(svcNow) {
		t.Fatalf("zero date should default to now, got %v", created.Date)
	}
	if store.lastCreated != created {
		t.Fatalf("store did not receive created transaction")
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := newTxService(newStubTxStore(), svcNow)

	_, err := svc.CreateTransaction(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{Title: " ", Amount: 5})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	_, err = svc.CreateTransaction(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{Title: "x", Amount: 0})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func TestUpdateTransactionAppliesPartialFields(t *testing.T) {
	store := newStubTxStore(tx("t1", "Lunch", 12, models.TypeExpense, models.CategoryFood, svcNow))
	svc := newTxService(store, svcNow)

	updated, err := svc.UpdateTransaction(helpers.TestCtx(), "uid-1", "t1", dto.UpdateTransactionRequest{
		Amount: helpers.Ptr(15.0),
		Notes:  helpers.Ptr("team lunch #work"),
	})
	if err != nil {
		t.Fatalf("UpdateTransaction returned error: %v", err)
	}

	if updated.Amount != 15 || updated.Notes != "team lunch #work" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Title != "Lunch" || updated.Category != models.CategoryFood {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	svc := newTxService(newStubTxStore(), svcNow)

	_, err := svc.UpdateTransaction(helpers.TestCtx(), "uid-1", "missing", dto.UpdateTransactionRequest{})
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteTransactionChecksExistence(t *testing.T) {
	store := newStubTxStore(tx("t1", "Lunch", 12, models.TypeExpense, models.CategoryFood, svcNow))
	svc := newTxService(store, svcNow)

	if err := svc.DeleteTransaction(helpers.TestCtx(), "uid-1", "t1"); err != nil {
		t.Fatalf("DeleteTransaction returned error: %v", err)
	}
	if store.lastDeleted != "t1" {
		t.Fatalf("store delete not called for t1")
	}

	err := svc.DeleteTransaction(helpers.TestCtx(), "uid-1", "t1")
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestAttachmentLifecycle(t *testing.T) {
	store := newStubTxStore(tx("t1", "Lunch", 12, models.TypeExpense, models.CategoryFood, svcNow))
	svc := newTxService(store, svcNow)

	withAttachment, err := svc.AddAttachment(helpers.TestCtx(), "uid-1", "t1", dto.AddAttachmentRequest{
		FileName:     "receipt.jpg",
		RelativePath: "attachments/receipt.jpg",
	})
	if err != nil {
		t.Fatalf("AddAttachment returned error: %v", err)
	}
	if len(withAttachment.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(withAttachment.Attachments))
	}
	attachmentID := withAttachment.Attachments[0].AttachmentID
	if attachmentID == "" {
		t.Fatalf("attachment id not generated")
	}

	removed, err := svc.RemoveAttachment(helpers.TestCtx(), "uid-1", "t1", attachmentID)
	if err != nil {
		t.Fatalf("RemoveAttachment returned error: %v", err)
	}
	if len(removed.Attachments) != 0 {
		t.Fatalf("attachment not removed: %+v", removed.Attachments)
	}

	files := svc.Files.(*stubFileStore)
	if len(files.deleted) != 1 || files.deleted[0] != "uid-1/attachments/receipt.jpg" {
		t.Fatalf("attachment file not deleted: %v", files.deleted)
	}

	_, err = svc.RemoveAttachment(helpers.TestCtx(), "uid-1", "t1", attachmentID)
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected not found for unknown attachment, got %v", err)
	}
}

func TestDeleteTransactionCascadesAttachmentFiles(t *testing.T) {
	existing := tx("t1", "Lunch", 12, models.TypeExpense, models.CategoryFood, svcNow)
	existing.Attachments = []models.Attachment{
		{AttachmentID: "a1", FileName: "receipt.jpg", RelativePath: "attachments/receipt.jpg"},
		{AttachmentID: "a2", FileName: "invoice.pdf", RelativePath: "attachments/invoice.pdf"},
	}
	store := newStubTxStore(existing)
	svc := newTxService(store, svcNow)

	if err := svc.DeleteTransaction(helpers.TestCtx(), "uid-1", "t1"); err != nil {
		t.Fatalf("DeleteTransaction returned error: %v", err)
	}

	files := svc.Files.(*stubFileStore)
	if len(files.deleted) != 2 {
		t.Fatalf("expected two file deletes, got %v", files.deleted)
	}
	if files.deleted[0] != "uid-1/attachments/receipt.jpg" || files.deleted[1] != "uid-1/attachments/invoice.pdf" {
		t.Fatalf("unexpected delete paths: %v", files.deleted)
	}
}

func TestListTransactionsFiltersAndSorts(t *testing.T) {
	store := newStubTxStore(
		tx("t1", "Groceries", 80, models.TypeExpense, models.CategoryFood, svcNow.AddDate(0, 0, -1)),
		tx("t2", "Salary", 3000, models.TypeIncome, models.CategoryOther, svcNow.AddDate(0, 0, -2)),
		tx("t3", "Cinema", 25, models.TypeExpense, models.CategoryEntertainment, svcNow.AddDate(0, -2, 0)),
	)
	svc := newTxService(store, svcNow)

	result, err := svc.ListTransactions(helpers.TestCtx(), "uid-1", dto.TransactionFilters{
		Type:      "expense",
		DateRange: dto.DateRangeThisMonth,
	})
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if result.TotalCount != 1 || result.Transactions[0].TransactionID != "t1" {
		t.Fatalf("unexpected filter result: %+v", result)
	}

	all, err := svc.ListTransactions(helpers.TestCtx(), "uid-1", dto.TransactionFilters{Sort: dto.SortAmountHighest})
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if all.TotalCount != 3 || all.Transactions[0].TransactionID != "t2" {
		t.Fatalf("amount sort wrong: %+v", all.Transactions)
	}
}

func TestListTransactionsSearchMatchesTags(t *testing.T) {
	groceries := tx("t1", "Groceries", 80, models.TypeExpense, models.CategoryFood, svcNow)
	groceries.Notes = "weekly shop #Essentials"
	store := newStubTxStore(
		groceries,
		tx("t2", "Cinema", 25, models.TypeExpense, models.CategoryEntertainment, svcNow),
	)
	svc := newTxService(store, svcNow)

	result, err := svc.ListTransactions(helpers.TestCtx(), "uid-1", dto.TransactionFilters{Search: "#essentials"})
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if result.TotalCount != 1 || result.Transactions[0].TransactionID != "t1" {
		t.Fatalf("tag search failed: %+v", result)
	}
}

func TestListTransactionsAmountBounds(t *testing.T) {
	store := newStubTxStore(
		tx("t1", "Coffee", 4, models.TypeExpense, models.CategoryFood, svcNow),
		tx("t2", "Groceries", 80, models.TypeExpense, models.CategoryFood, svcNow),
		tx("t3", "Laptop", 1200, models.TypeExpense, models.CategoryShopping, svcNow),
	)
	svc := newTxService(store, svcNow)

	result, err := svc.ListTransactions(helpers.TestCtx(), "uid-1", dto.TransactionFilters{
		MinAmount: helpers.Ptr(10.0),
		MaxAmount: helpers.Ptr(100.0),
	})
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if result.TotalCount != 1 || result.Transactions[0].TransactionID != "t2" {
		t.Fatalf("amount bounds failed: %+v", result)
	}
}
