package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/interfaces"
	"github.com/ternarybob/chronicle/internal/models"
)

// Service implements the tenant-scoped ingestion, query and aggregation
// engine over LogStorage. All limits (page size, batch size, metrics window)
// come from the immutable configuration handed in at construction.
type Service struct {
	storage interfaces.LogStorage
	limits  common.APIConfig
	logger  arbor.ILogger
}

// NewService creates a new LogService
func NewService(storage interfaces.LogStorage, limits common.APIConfig, logger arbor.ILogger) interfaces.LogService {
	return &Service{
		storage: storage,
		limits:  limits,
		logger:  logger,
	}
}

// Ingest validates the candidate, stamps identity and timestamps, and
// persists the record. The clientID always comes from the authenticated
// caller; any tenant field in the request body is ignored by construction
// (the request type has none).
func (s *Service) Ingest(ctx context.Context, clientID string, req *models.LogIngestRequest) (*models.WorkflowLog, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrInvalidPayload, err.Error())
	}

	log := &models.WorkflowLog{
		ID:                   common.NewLogID(),
		ClientID:             clientID,
		Environment:          req.Environment,
		WorkflowVersion:      req.WorkflowVersion,
		TicketID:             req.TicketID,
		ExecutedAt:           req.ExecutedAt,
		ExecutionTimeSeconds: req.ExecutionTimeSeconds,
		Status:               req.Status,
		Category:             req.Category,
		ResolutionStatus:     req.ResolutionStatus,
		Metrics:              req.Metrics,
		Payload:              req.Payload,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.storage.Insert(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("log_id", log.ID).
		Str("client_id", clientID).
		Str("ticket_id", log.TicketID).
		Str("status", log.Status).
		Msg("Log ingested")

	return log, nil
}

// IngestBatch ingests candidates with independent-commit semantics: each
// candidate goes through Ingest on its own, and a failure on one never rolls
// back records already written for earlier candidates. The caller observes
// partial success through the per-item results.
func (s *Service) IngestBatch(ctx context.Context, clientID string, reqs []models.LogIngestRequest) ([]models.BatchItemResult, error) {
	if len(reqs) > s.limits.MaxBatchSize {
		return nil, fmt.Errorf("%w: maximum %d logs per batch, got %d",
			interfaces.ErrBatchTooLarge, s.limits.MaxBatchSize, len(reqs))
	}

	results := make([]models.BatchItemResult, 0, len(reqs))
	succeeded := 0
	for i := range reqs {
		log, err := s.Ingest(ctx, clientID, &reqs[i])
		if err != nil {
			results = append(results, models.BatchItemResult{Index: i, Error: err.Error()})
			continue
		}
		results = append(results, models.BatchItemResult{Index: i, LogID: log.ID})
		succeeded++
	}

	s.logger.Info().
		Str("client_id", clientID).
		Int("submitted", len(reqs)).
		Int("succeeded", succeeded).
		Msg("Batch ingested")

	return results, nil
}

// GetLog returns a single record. The storage layer already collapses
// "absent" and "owned by another client" into the same ErrLogNotFound.
func (s *Service) GetLog(ctx context.Context, clientID, id string) (*models.WorkflowLog, error) {
	return s.storage.GetByID(ctx, clientID, id)
}

// ListLogs validates pagination bounds and delegates to storage. Out of
// bounds values are rejected rather than clamped, so callers get predictable
// behavior instead of silently truncated pages.
func (s *Service) ListLogs(ctx context.Context, clientID string, filter models.LogFilter, page, pageSize int) ([]models.WorkflowLog, int, error) {
	if page < 1 {
		return nil, 0, fmt.Errorf("%w: page must be >= 1, got %d", interfaces.ErrInvalidQuery, page)
	}
	if pageSize < 1 || pageSize > s.limits.MaxPageSize {
		return nil, 0, fmt.Errorf("%w: page_size must be between 1 and %d, got %d",
			interfaces.ErrInvalidQuery, s.limits.MaxPageSize, pageSize)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, 0, fmt.Errorf("%w: end_date is before start_date", interfaces.ErrInvalidQuery)
	}

	return s.storage.Query(ctx, clientID, filter, page, pageSize)
}
