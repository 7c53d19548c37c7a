package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/chronicle/internal/models"
)

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	LogStorage() LogStorage
	Close() error
}

// LogStorage persists workflow log records. Every read method takes the
// caller's clientID and must never return a record owned by another client.
type LogStorage interface {
	// Insert persists a single record. The write is atomic: the record is
	// either fully persisted or not at all.
	Insert(ctx context.Context, log *models.WorkflowLog) error

	// GetByID returns the record only when both id and clientID match;
	// otherwise ErrLogNotFound
	GetByID(ctx context.Context, clientID, id string) (*models.WorkflowLog, error)

	// Query returns one page of the client's records matching the filter,
	// ordered by ExecutedAt descending with ID as tiebreaker, plus the total
	// count over the full filtered set
	Query(ctx context.Context, clientID string, filter models.LogFilter, page, pageSize int) ([]models.WorkflowLog, int, error)

	// Window returns all of the client's records with ExecutedAt in
	// [since, until] (inclusive both ends)
	Window(ctx context.Context, clientID string, since, until time.Time) ([]models.WorkflowLog, error)

	// Count returns the number of records stored for the client
	Count(ctx context.Context, clientID string) (int, error)

	// DeleteOlderThan removes records across all clients with ExecutedAt
	// before the cutoff. Used by retention tooling only, never by a tenant
	// read path.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
