package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/impact-dashboard/internal/pkg/httputil"
)

type metricsResponse struct {
	Metrics any `json:"metrics"`
}

func writeMetrics(w http.ResponseWriter, m any, err error) {
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, metricsResponse{Metrics: m})
}

// GetBasicMetrics handles GET /api/metrics
func (h *Handlers) GetBasicMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.Basic(r.Context(), organization(r))
	writeMetrics(w, m, err)
}

func (h *Handlers) GetEngagement(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.Engagement(r.Context(), organization(r))
	writeMetrics(w, m, err)
}

func (h *Handlers) GetImpact(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.Impact(r.Context(), organization(r))
	writeMetrics(w, m, err)
}

func (h *Handlers) GetHealthMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.Health(r.Context(), organization(r))
	writeMetrics(w, m, err)
}

// GetDashboard handles GET /api/metrics/dashboard. Unlike the other metric
// routes the body is the dashboard itself, not wrapped.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.Dashboard(r.Context(), organization(r))
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, m)
}

// GetOrganizationMetrics handles GET /api/metrics/organization/{org}
func (h *Handlers) GetOrganizationMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.Dashboard(r.Context(), chi.URLParam(r, "org"))
	writeMetrics(w, m, err)
}

// GetStats handles GET /api/metrics/stats
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.metrics.Stats(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"stats": s})
}

// GetDailyActivity handles GET /api/metrics/daily-activity?days=N
func (h *Handlers) GetDailyActivity(w http.ResponseWriter, r *http.Request) {
	days := h.dailyDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.BadRequest(w, "days must be an integer")
			return
		}
		days = n
	}
	rows, err := h.metrics.DailyActivity(r.Context(), organization(r), days)
	writeList(w, rows, err)
}
