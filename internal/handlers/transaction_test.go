package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/models"
)

type stubTransactionService struct {
	lastFilters dto.TransactionFilters
	lastCreate  dto.CreateTransactionRequest
	lastID      string
	err         error
}

func (s *stubTransactionService) CreateTransaction(_ context.Context, _ string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	s.lastCreate = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Transaction{TransactionID: "t1", Title: req.Title}, nil
}

func (s *stubTransactionService) GetTransaction(_ context.Context, _ string, transactionID string) (*models.Transaction, error) {
	s.lastID = transactionID
	return &models.Transaction{TransactionID: transactionID}, s.err
}

func (s *stubTransactionService) ListTransactions(_ context.Context, _ string, filters dto.TransactionFilters) (dto.TransactionsResult, error) {
	s.lastFilters = filters
	return dto.TransactionsResult{}, s.err
}

func (s *stubTransactionService) UpdateTransaction(_ context.Context, _ string, transactionID string, _ dto.UpdateTransactionRequest) (*models.Transaction, error) {
	s.lastID = transactionID
	return &models.Transaction{TransactionID: transactionID}, s.err
}

func (s *stubTransactionService) DeleteTransaction(_ context.Context, _ string, transactionID string) error {
	s.lastID = transactionID
	return s.err
}

func (s *stubTransactionService) AddAttachment(_ context.Context, _ string, transactionID string, _ dto.AddAttachmentRequest) (*models.Transaction, error) {
	s.lastID = transactionID
	return &models.Transaction{TransactionID: transactionID}, s.err
}

func (s *stubTransactionService) RemoveAttachment(_ context.Context, _ string, transactionID, _ string) (*models.Transaction, error) {
	s.lastID = transactionID
	return &models.Transaction{TransactionID: transactionID}, s.err
}

func newTransactionHarness(svc *stubTransactionService) (*transactionHandlers, *stubResponseHandler) {
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{
		ResponseHandler: resp,
		TransactionSvc:  svc,
	})
	return h, resp
}

func TestCreateTransactionHandler(t *testing.T) {
	svc := &stubTransactionService{}
	h, resp := newTransactionHarness(svc)

	body := `{"title":"Groceries","amount":42.5,"category":"food","type":"expense"}`
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req = authedRequest(req, "uid-1", "u@example.com")
	rr := httptest.NewRecorder()

	h.CreateTransaction(rr, req)

	if svc.lastCreate.Title != "Groceries" || svc.lastCreate.Amount != 42.5 {
		t.Fatalf("service received wrong payload: %+v", svc.lastCreate)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected 201 success write")
	}
}

func TestCreateTransactionHandlerInvalidJSON(t *testing.T) {
	svc := &stubTransactionService{}
	h, resp := newTransactionHarness(svc)

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{"))
	rr := httptest.NewRecorder()

	h.CreateTransaction(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError for malformed body")
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called")
	}
}

func TestListTransactionsParsesQuery(t *testing.T) {
	svc := &stubTransactionService{}
	h, resp := newTransactionHarness(svc)

	target := "/transactions?type=expense&category=food&category=bills&minAmount=10&maxAmount=100&search=coffee&sort=amountHighest&dateRange=thisMonth"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = authedRequest(req, "uid-1", "u@example.com")
	rr := httptest.NewRecorder()

	h.ListTransactions(rr, req)

	f := svc.lastFilters
	if f.Type != "expense" || f.Search != "coffee" || f.Sort != dto.SortAmountHighest {
		t.Fatalf("unexpected filters: %+v", f)
	}
	if len(f.Categories) != 2 || f.Categories[0] != "food" {
		t.Fatalf("categories not parsed: %+v", f.Categories)
	}
	if f.MinAmount == nil || *f.MinAmount != 10 || f.MaxAmount == nil || *f.MaxAmount != 100 {
		t.Fatalf("amount bounds not parsed: %+v", f)
	}
	if f.DateRange != dto.DateRangeThisMonth {
		t.Fatalf("date range not parsed: %+v", f)
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("expected success write")
	}
}

func TestListTransactionsCustomRange(t *testing.T) {
	svc := &stubTransactionService{}
	h, _ := newTransactionHarness(svc)

	from := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	target := "/transactions?from=" + from.Format(time.RFC3339)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = authedRequest(req, "uid-1", "u@example.com")

	h.ListTransactions(httptest.NewRecorder(), req)

	f := svc.lastFilters
	if f.DateRange != dto.DateRangeCustom || f.CustomStart == nil || !f.CustomStart.Equal(from) {
		t.Fatalf("custom range not parsed: %+v", f)
	}
}

func TestListTransactionsRejectsBadAmount(t *testing.T) {
	svc := &stubTransactionService{}
	h, resp := newTransactionHarness(svc)

	req := httptest.NewRequest(http.MethodGet, "/transactions?minAmount=abc", nil)
	rr := httptest.NewRecorder()

	h.ListTransactions(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError for non-numeric amount")
	}
}

func TestDeleteTransactionUsesURLParam(t *testing.T) {
	svc := &stubTransactionService{}
	h, resp := newTransactionHarness(svc)

	req := httptest.NewRequest(http.MethodDelete, "/transactions/t42", nil)
	req = authedRequest(req, "uid-1", "u@example.com")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("transactionId", "t42")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	h.DeleteTransaction(httptest.NewRecorder(), req)

	if svc.lastID != "t42" {
		t.Fatalf("service received wrong id: %s", svc.lastID)
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("expected success write")
	}
}
