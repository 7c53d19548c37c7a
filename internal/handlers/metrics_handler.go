package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/interfaces"
)

// MetricsHandler serves the aggregated dashboard endpoints
type MetricsHandler struct {
	service interfaces.LogService
	logger  arbor.ILogger
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(service interfaces.LogService, logger arbor.ILogger) *MetricsHandler {
	return &MetricsHandler{
		service: service,
		logger:  logger,
	}
}

// daysParam parses the lookback window, defaulting to 7 days
func daysParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 7, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return days, true
}

// OverviewHandler handles GET /api/v1/metrics/overview
func (h *MetricsHandler) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	clientID, ok := RequireClient(w, r)
	if !ok {
		return
	}

	days, ok := daysParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	metrics, err := h.service.Overview(r.Context(), clientID, days)
	if err != nil {
		WriteServiceError(w, h.logger, err, "Failed to fetch metrics")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":      metrics,
		"client_id": clientID,
	})
}

// CategoriesHandler handles GET /api/v1/metrics/categories
func (h *MetricsHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	clientID, ok := RequireClient(w, r)
	if !ok {
		return
	}

	days, ok := daysParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	breakdown, err := h.service.CategoryBreakdown(r.Context(), clientID, days)
	if err != nil {
		WriteServiceError(w, h.logger, err, "Failed to fetch category metrics")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":        breakdown,
		"period_days": days,
	})
}
