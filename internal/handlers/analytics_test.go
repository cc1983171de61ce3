package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pennyflow/pennyflow-backend/internal/dto"
	"github.com/pennyflow/pennyflow-backend/internal/engine"
)

type stubAnalyticsService struct {
	lastUID   string
	lastLimit int
	err       error
}

func (s *stubAnalyticsService) Statistics(_ context.Context, uid string) (*engine.Statistics, error) {
	s.lastUID = uid
	return &engine.Statistics{Balance: 100}, s.err
}

func (s *stubAnalyticsService) CategoryChart(_ context.Context, uid string) (dto.CategoryChartResult, error) {
	s.lastUID = uid
	return dto.CategoryChartResult{}, s.err
}

func (s *stubAnalyticsService) MonthlyChart(_ context.Context, uid string) (dto.MonthlyChartResult, error) {
	s.lastUID = uid
	return dto.MonthlyChartResult{}, s.err
}

func (s *stubAnalyticsService) BalanceChart(_ context.Context, uid string) (dto.BalanceChartResult, error) {
	s.lastUID = uid
	return dto.BalanceChartResult{}, s.err
}

func (s *stubAnalyticsService) Insights(_ context.Context, uid string, limit int) (dto.InsightsResult, error) {
	s.lastUID = uid
	s.lastLimit = limit
	return dto.InsightsResult{}, s.err
}

func (s *stubAnalyticsService) GetOverview(_ context.Context, uid string) (*dto.OverviewResult, error) {
	s.lastUID = uid
	return &dto.OverviewResult{}, s.err
}

func newAnalyticsHarness(svc *stubAnalyticsService) (*analyticsHandlers, *stubResponseHandler) {
	resp := &stubResponseHandler{}
	h := NewAnalyticsHandlers(&Deps{
		ResponseHandler: resp,
		AnalyticsSvc:    svc,
	})
	return h, resp
}

func TestStatisticsHandlerPassesUID(t *testing.T) {
	svc := &stubAnalyticsService{}
	h, resp := newAnalyticsHarness(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/statistics", nil)
	req = authedRequest(req, "uid-77", "u@example.com")

	h.Statistics(httptest.NewRecorder(), req)

	if svc.lastUID != "uid-77" {
		t.Fatalf("service received wrong uid: %s", svc.lastUID)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected 200 success write")
	}
}

func TestInsightsHandlerParsesLimit(t *testing.T) {
	svc := &stubAnalyticsService{}
	h, resp := newAnalyticsHarness(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/insights?limit=3", nil)
	req = authedRequest(req, "uid-1", "u@example.com")

	h.Insights(httptest.NewRecorder(), req)

	if svc.lastLimit != 3 {
		t.Fatalf("limit not passed through: %d", svc.lastLimit)
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("expected success write")
	}
}

func TestInsightsHandlerRejectsBadLimit(t *testing.T) {
	svc := &stubAnalyticsService{}
	h, resp := newAnalyticsHarness(svc)

	for _, raw := range []string{"abc", "-1"} {
		resp.handleErrorCalled = false
		req := httptest.NewRequest(http.MethodGet, "/analytics/insights?limit="+raw, nil)

		h.Insights(httptest.NewRecorder(), req)

		if !resp.handleErrorCalled {
			t.Fatalf("expected HandleError for limit=%q", raw)
		}
	}
}

func TestOverviewHandler(t *testing.T) {
	svc := &stubAnalyticsService{}
	h, resp := newAnalyticsHarness(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview", nil)
	req = authedRequest(req, "uid-1", "u@example.com")

	h.Overview(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled {
		t.Fatalf("expected success write")
	}
	if _, ok := resp.writeSuccessData.(*dto.OverviewResult); !ok {
		t.Fatalf("unexpected payload type: %T", resp.writeSuccessData)
	}
}
