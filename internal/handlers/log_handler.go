package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/interfaces"
	"github.com/ternarybob/chronicle/internal/models"
)

// LogHandler handles log ingestion and query HTTP requests
type LogHandler struct {
	service interfaces.LogService
	config  *common.Config
	logger  arbor.ILogger
}

// NewLogHandler creates a new log handler
func NewLogHandler(service interfaces.LogService, config *common.Config, logger arbor.ILogger) *LogHandler {
	return &LogHandler{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// IngestHandler handles POST /api/v1/logs
func (h *LogHandler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	clientID, ok := RequireClient(w, r)
	if !ok {
		return
	}

	var req models.LogIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Str("client_id", clientID).Msg("Failed to parse log payload")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	log, err := h.service.Ingest(r.Context(), clientID, &req)
	if err != nil {
		WriteServiceError(w, h.logger, err, "Failed to ingest log")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"status":  "success",
		"log_id":  log.ID,
		"message": "Log ingested successfully",
	})
}

// IngestBatchHandler handles POST /api/v1/logs/batch
func (h *LogHandler) IngestBatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	clientID, ok := RequireClient(w, r)
	if !ok {
		return
	}

	var reqs []models.LogIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		h.logger.Warn().Err(err).Str("client_id", clientID).Msg("Failed to parse batch payload")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.service.IngestBatch(r.Context(), clientID, reqs)
	if err != nil {
		WriteServiceError(w, h.logger, err, "Batch ingestion failed")
		return
	}

	logIDs := make([]string, 0, len(results))
	itemErrors := make([]models.BatchItemResult, 0)
	for _, result := range results {
		if result.Error != "" {
			itemErrors = append(itemErrors, result)
			continue
		}
		logIDs = append(logIDs, result.LogID)
	}

	status := "success"
	if len(itemErrors) > 0 {
		status = "partial"
	}

	response := map[string]interface{}{
		"status":  status,
		"count":   len(logIDs),
		"log_ids": logIDs,
	}
	if len(itemErrors) > 0 {
		response["errors"] = itemErrors
	}

	WriteJSON(w, http.StatusCreated, response)
}

// ListHandler handles GET /api/v1/logs
func (h *LogHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	clientID, ok := RequireClient(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	page := 1
	if raw := query.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		page = p
	}

	pageSize := h.config.API.DefaultPageSize
	if raw := query.Get("page_size"); raw != "" {
		ps, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "page_size must be an integer")
			return
		}
		pageSize = ps
	}

	filter := models.LogFilter{
		Environment: query.Get("environment"),
		Status:      query.Get("status"),
		Category:    query.Get("category"),
		TicketID:    query.Get("ticket_id"),
	}

	if raw := query.Get("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "start_date must be an RFC3339 timestamp or YYYY-MM-DD date")
			return
		}
		filter.StartDate = &t
	}
	if raw := query.Get("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "end_date must be an RFC3339 timestamp or YYYY-MM-DD date")
			return
		}
		filter.EndDate = &t
	}

	logs, total, err := h.service.ListLogs(r.Context(), clientID, filter, page, pageSize)
	if err != nil {
		WriteServiceError(w, h.logger, err, "Failed to fetch logs")
		return
	}

	pages := 0
	if total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data": logs,
		"pagination": map[string]int{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
			"pages":     pages,
		},
		"filters": map[string]interface{}{
			"environment": emptyToNil(filter.Environment),
			"status":      emptyToNil(filter.Status),
			"category":    emptyToNil(filter.Category),
			"ticket_id":   emptyToNil(filter.TicketID),
			"start_date":  timeToNil(filter.StartDate),
			"end_date":    timeToNil(filter.EndDate),
		},
	})
}

// DetailHandler handles GET /api/v1/logs/{id}
func (h *LogHandler) DetailHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	clientID, ok := RequireClient(w, r)
	if !ok {
		return
	}

	logID := strings.TrimPrefix(r.URL.Path, "/api/v1/logs/")
	if logID == "" || strings.Contains(logID, "/") {
		WriteError(w, http.StatusNotFound, "Log not found")
		return
	}

	log, err := h.service.GetLog(r.Context(), clientID, logID)
	if err != nil {
		WriteServiceError(w, h.logger, err, "Failed to fetch log detail")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data": log,
	})
}

// parseDate accepts RFC3339 timestamps and bare dates
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func emptyToNil(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}

func timeToNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
