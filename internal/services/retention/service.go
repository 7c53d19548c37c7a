package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/interfaces"
)

// Service runs a scheduled sweep that deletes log records older than the
// configured maximum age. It is operator tooling and runs across all
// clients; the core read paths never delete anything.
type Service struct {
	storage interfaces.LogStorage
	config  common.RetentionConfig
	maxAge  time.Duration
	cron    *cron.Cron
	logger  arbor.ILogger
}

// NewService creates a retention sweeper from configuration. Returns an
// error when retention is enabled but the schedule or max age cannot be
// parsed.
func NewService(storage interfaces.LogStorage, config common.RetentionConfig, logger arbor.ILogger) (*Service, error) {
	s := &Service{
		storage: storage,
		config:  config,
		logger:  logger,
	}

	if !config.Enabled {
		return s, nil
	}

	maxAge, err := time.ParseDuration(config.MaxAge)
	if err != nil {
		return nil, fmt.Errorf("invalid retention max_age %q: %w", config.MaxAge, err)
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("retention max_age must be positive, got %q", config.MaxAge)
	}
	s.maxAge = maxAge

	// Schedule includes a seconds field
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(config.Schedule, s.runSweep); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", config.Schedule, err)
	}
	s.cron = c

	return s, nil
}

// Start begins the scheduled sweeps. No-op when retention is disabled.
func (s *Service) Start() {
	if s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Str("max_age", s.config.MaxAge).
		Msg("Retention sweeper started")
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Retention sweeper stopped")
}

func (s *Service) runSweep() {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	deleted, err := s.Sweep(context.Background(), cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("Retention sweep failed")
		return
	}
	s.logger.Info().
		Int("deleted", deleted).
		Str("cutoff", cutoff.Format(time.RFC3339)).
		Msg("Retention sweep completed")
}

// Sweep deletes records executed before the cutoff and returns the number
// removed
func (s *Service) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	return s.storage.DeleteOlderThan(ctx, cutoff)
}
