package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/errs"
	"github.com/pennyflow/pennyflow-backend/internal/middleware"
	"github.com/pennyflow/pennyflow-backend/internal/models"
	"github.com/pennyflow/pennyflow-backend/internal/response"
)

type recurringService interface {
	CreateRecurring(ctx context.Context, uid string, req dto.CreateRecurringRequest) (*models.RecurringTransaction, error)
	GetRecurring(ctx context.Context, uid, recurringID string) (*models.RecurringTransaction, error)
	ListRecurring(ctx context.Context, uid string) ([]models.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, uid, recurringID string, req dto.UpdateRecurringRequest) (*models.RecurringTransaction, error)
	DeleteRecurring(ctx context.Context, uid, recurringID string) error
	Upcoming(ctx context.Context, uid string) ([]dto.UpcomingOccurrence, error)
	ProcessDue(ctx context.Context, uid string) (dto.ProcessRecurringResult, error)
}

type recurringHandlers struct {
	ResponseHandler response.ResponseHandler
	RecurringSvc    recurringService
}

func NewRecurringHandlers(deps *Deps) *recurringHandlers {
	return &recurringHandlers{
		ResponseHandler: deps.ResponseHandler,
		RecurringSvc:    deps.RecurringSvc,
	}
}

func (h *recurringHandlers) RecurringRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListRecurring)
	r.Post("/", h.CreateRecurring)
	r.Get("/upcoming", h.Upcoming) // must be before /{recurringId}
	r.Post("/process", h.ProcessDue)
	r.Get("/{recurringId}", h.GetRecurring)
	r.Put("/{recurringId}", h.UpdateRecurring)
	r.Delete("/{recurringId}", h.DeleteRecurring)
	return r
}

func (h *recurringHandlers) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	def, err := h.RecurringSvc.CreateRecurring(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, def)
}

func (h *recurringHandlers) GetRecurring(w http.ResponseWriter, r *http.Request) {
	recurringID := chi.URLParam(r, "recurringId")
	uid := middleware.UID(r.Context())
	def, err := h.RecurringSvc.GetRecurring(r.Context(), uid, recurringID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, def)
}

func (h *recurringHandlers) ListRecurring(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	defs, err := h.RecurringSvc.ListRecurring(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, defs)
}

func (h *recurringHandlers) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	recurringID := chi.URLParam(r, "recurringId")
	var req dto.UpdateRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	def, err := h.RecurringSvc.UpdateRecurring(r.Context(), uid, recurringID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, def)
}

func (h *recurringHandlers) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	recurringID := chi.URLParam(r, "recurringId")
	uid := middleware.UID(r.Context())
	if err := h.RecurringSvc.DeleteRecurring(r.Context(), uid, recurringID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *recurringHandlers) Upcoming(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	upcoming, err := h.RecurringSvc.Upcoming(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, upcoming)
}

func (h *recurringHandlers) ProcessDue(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.RecurringSvc.ProcessDue(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
