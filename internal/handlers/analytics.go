package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/engine"
	"github.com/pennyflow/pennyflow-backend/internal/errs"
	"github.com/pennyflow/pennyflow-backend/internal/middleware"
	"github.com/pennyflow/pennyflow-backend/internal/response"
)

type analyticsService interface {
	Statistics(ctx context.Context, uid string) (*engine.Statistics, error)
	CategoryChart(ctx context.Context, uid string) (dto.CategoryChartResult, error)
	MonthlyChart(ctx context.Context, uid string) (dto.MonthlyChartResult, error)
	BalanceChart(ctx context.Context, uid string) (dto.BalanceChartResult, error)
	Insights(ctx context.Context, uid string, limit int) (dto.InsightsResult, error)
	GetOverview(ctx context.Context, uid string) (*dto.OverviewResult, error)
}

type analyticsHandlers struct {
	ResponseHandler response.ResponseHandler
	AnalyticsSvc    analyticsService
}

func NewAnalyticsHandlers(deps *Deps) *analyticsHandlers {
	return &analyticsHandlers{
		ResponseHandler: deps.ResponseHandler,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *analyticsHandlers) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/statistics", h.Statistics)
	r.Get("/overview", h.Overview)
	r.Get("/charts/categories", h.CategoryChart)
	r.Get("/charts/monthly", h.MonthlyChart)
	r.Get("/charts/balance", h.BalanceChart)
	r.Get("/insights", h.Insights)
	return r
}

func (h *analyticsHandlers) Statistics(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	stats, err := h.AnalyticsSvc.Statistics(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, stats)
}

func (h *analyticsHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	overview, err := h.AnalyticsSvc.GetOverview(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, overview)
}

func (h *analyticsHandlers) CategoryChart(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.AnalyticsSvc.CategoryChart(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *analyticsHandlers) MonthlyChart(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.AnalyticsSvc.MonthlyChart(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *analyticsHandlers) BalanceChart(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.AnalyticsSvc.BalanceChart(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *analyticsHandlers) Insights(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = v
	}

	uid := middleware.UID(r.Context())
	result, err := h.AnalyticsSvc.Insights(r.Context(), uid, limit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
