package interfaces

import (
	"context"

	"github.com/ternarybob/chronicle/internal/models"
)

// KeyResolver maps an opaque API key to the client identity it
// authenticates
type KeyResolver interface {
	// Resolve returns the client ID for the key, or ErrUnauthenticated when
	// the key is missing, empty or unknown
	Resolve(apiKey string) (string, error)
}

// LogService is the tenant-scoped ingestion, query and aggregation engine
type LogService interface {
	// Ingest validates and persists one record, returning it with the
	// generated ID and server-assigned CreatedAt
	Ingest(ctx context.Context, clientID string, req *models.LogIngestRequest) (*models.WorkflowLog, error)

	// IngestBatch ingests up to the configured maximum of candidates with
	// independent-commit semantics and per-item outcomes
	IngestBatch(ctx context.Context, clientID string, reqs []models.LogIngestRequest) ([]models.BatchItemResult, error)

	// GetLog returns a single record; absent and other-tenant records yield
	// the identical ErrLogNotFound
	GetLog(ctx context.Context, clientID, id string) (*models.WorkflowLog, error)

	// ListLogs returns one page of filtered records plus the total matching
	// count
	ListLogs(ctx context.Context, clientID string, filter models.LogFilter, page, pageSize int) ([]models.WorkflowLog, int, error)

	// Overview computes the dashboard summary over the last `days` days
	Overview(ctx context.Context, clientID string, days int) (*models.OverviewMetrics, error)

	// CategoryBreakdown groups windowed records by category
	CategoryBreakdown(ctx context.Context, clientID string, days int) ([]models.CategoryMetrics, error)
}
