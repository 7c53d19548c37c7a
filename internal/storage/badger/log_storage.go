package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/interfaces"
	"github.com/ternarybob/chronicle/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// sortLogsDesc sorts records newest first by ExecutedAt. Ties are broken by
// ID ascending so the total order is stable across page boundaries even when
// timestamps collide.
func sortLogsDesc(logs []models.WorkflowLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].ExecutedAt.Equal(logs[j].ExecutedAt) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].ExecutedAt.After(logs[j].ExecutedAt)
	})
}

// LogStorage implements the LogStorage interface for Badger
type LogStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewLogStorage creates a new LogStorage instance
func NewLogStorage(db *BadgerDB, logger arbor.ILogger) interfaces.LogStorage {
	return &LogStorage{
		db:     db,
		logger: logger,
	}
}

func (s *LogStorage) Insert(ctx context.Context, log *models.WorkflowLog) error {
	if err := s.db.Store().Insert(log.ID, log); err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// GetByID returns the record only when both id and clientID match. A record
// owned by another client yields the same ErrLogNotFound as a record that
// does not exist, so the two cases are indistinguishable to the caller.
func (s *LogStorage) GetByID(ctx context.Context, clientID, id string) (*models.WorkflowLog, error) {
	var log models.WorkflowLog
	err := s.db.Store().Get(id, &log)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	if log.ClientID != clientID {
		return nil, interfaces.ErrLogNotFound
	}
	return &log, nil
}

// Query fetches the client's records via the indexed ClientID field, applies
// the remaining predicates and ordering in-memory (badgerhold cannot compose
// range and equality criteria across fields efficiently), and slices out the
// requested page. The returned total counts the full filtered set.
func (s *LogStorage) Query(ctx context.Context, clientID string, filter models.LogFilter, page, pageSize int) ([]models.WorkflowLog, int, error) {
	var all []models.WorkflowLog
	if err := s.db.Store().Find(&all, badgerhold.Where("ClientID").Eq(clientID)); err != nil {
		return nil, 0, fmt.Errorf("failed to query logs: %w", err)
	}

	filtered := all[:0]
	for i := range all {
		if filter.Matches(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}

	sortLogsDesc(filtered)

	total := len(filtered)
	start := (page - 1) * pageSize
	if start >= total {
		return []models.WorkflowLog{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (s *LogStorage) Window(ctx context.Context, clientID string, since, until time.Time) ([]models.WorkflowLog, error) {
	var all []models.WorkflowLog
	if err := s.db.Store().Find(&all, badgerhold.Where("ClientID").Eq(clientID)); err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}

	windowed := all[:0]
	for i := range all {
		if all[i].ExecutedAt.Before(since) || all[i].ExecutedAt.After(until) {
			continue
		}
		windowed = append(windowed, all[i])
	}
	return windowed, nil
}

func (s *LogStorage) Count(ctx context.Context, clientID string) (int, error) {
	count, err := s.db.Store().Count(&models.WorkflowLog{}, badgerhold.Where("ClientID").Eq(clientID))
	if err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return int(count), nil
}

// DeleteOlderThan removes records across all clients. This is retention
// tooling, not a tenant read path.
func (s *LogStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	count, err := s.db.Store().Count(&models.WorkflowLog{}, badgerhold.Where("ExecutedAt").Lt(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to count expired logs: %w", err)
	}
	if count == 0 {
		return 0, nil
	}
	if err := s.db.Store().DeleteMatching(&models.WorkflowLog{}, badgerhold.Where("ExecutedAt").Lt(cutoff)); err != nil {
		return 0, fmt.Errorf("failed to delete expired logs: %w", err)
	}
	return int(count), nil
}
