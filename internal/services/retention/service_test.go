package retention

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/interfaces"
	"github.com/ternarybob/chronicle/internal/models"
	"github.com/ternarybob/chronicle/internal/storage/badger"
)

func newTestStorage(t *testing.T) interfaces.LogStorage {
	t.Helper()
	manager, err := badger.NewManager(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager.LogStorage()
}

func TestNewService_Validation(t *testing.T) {
	storage := newTestStorage(t)
	logger := arbor.NewLogger()

	t.Run("Disabled skips parsing", func(t *testing.T) {
		service, err := NewService(storage, common.RetentionConfig{Enabled: false, MaxAge: "garbage"}, logger)
		require.NoError(t, err)
		// Start and Stop are no-ops when disabled
		service.Start()
		service.Stop()
	})

	t.Run("Bad max_age rejected", func(t *testing.T) {
		_, err := NewService(storage, common.RetentionConfig{
			Enabled:  true,
			Schedule: "0 0 3 * * *",
			MaxAge:   "ninety days",
		}, logger)
		assert.Error(t, err)
	})

	t.Run("Bad schedule rejected", func(t *testing.T) {
		_, err := NewService(storage, common.RetentionConfig{
			Enabled:  true,
			Schedule: "not a schedule",
			MaxAge:   "2160h",
		}, logger)
		assert.Error(t, err)
	})
}

func TestService_Sweep(t *testing.T) {
	storage := newTestStorage(t)
	logger := arbor.NewLogger()
	ctx := context.Background()

	service, err := NewService(storage, common.RetentionConfig{
		Enabled:  true,
		Schedule: "0 0 3 * * *",
		MaxAge:   "2160h",
	}, logger)
	require.NoError(t, err)

	cutoff := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	insert := func(id string, executedAt time.Time) {
		require.NoError(t, storage.Insert(ctx, &models.WorkflowLog{
			ID:          id,
			ClientID:    "acme",
			Environment: models.EnvironmentProduction,
			ExecutedAt:  executedAt,
			CreatedAt:   time.Now().UTC(),
		}))
	}
	insert("log_expired", cutoff.Add(-24*time.Hour))
	insert("log_recent", cutoff.Add(24*time.Hour))

	deleted, err := service.Sweep(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = storage.GetByID(ctx, "acme", "log_expired")
	assert.ErrorIs(t, err, interfaces.ErrLogNotFound)

	_, err = storage.GetByID(ctx, "acme", "log_recent")
	assert.NoError(t, err)
}
