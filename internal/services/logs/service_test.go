package logs

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

func newTestService(t *testing.T) (interfaces.LogService, interfaces.LogStorage) {
	t.Helper()

	manager, err := badger.NewManager(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	limits := common.APIConfig{
		DefaultPageSize: 50,
		MaxPageSize:     100,
		MaxBatchSize:    100,
		MaxMetricsDays:  90,
	}
	return NewService(manager.LogStorage(), limits, arbor.NewLogger()), manager.LogStorage()
}

func ingestRequest(executedAt time.Time, status string) models.LogIngestRequest {
	return models.LogIngestRequest{
		Environment: models.EnvironmentProduction,
		ExecutedAt:  executedAt,
		Status:      status,
	}
}

func TestService_Ingest(t *testing.T) {
	service, storage := newTestService(t)
	ctx := context.Background()

	t.Run("Assigns ID and binds client identity", func(t *testing.T) {
		req := ingestRequest(time.Now().UTC(), models.StatusSuccess)
		req.TicketID = "TICK-1"
		req.Payload = []byte(`{"raw":true}`)

		log, err := service.Ingest(ctx, "acme", &req)
		require.NoError(t, err)
		assert.NotEmpty(t, log.ID)
		assert.Contains(t, log.ID, "log_")
		assert.Equal(t, "acme", log.ClientID)
		assert.False(t, log.CreatedAt.IsZero())

		stored, err := storage.GetByID(ctx, "acme", log.ID)
		require.NoError(t, err)
		assert.Equal(t, "TICK-1", stored.TicketID)
		assert.JSONEq(t, `{"raw":true}`, string(stored.Payload))
	})

	t.Run("Invalid payload writes nothing", func(t *testing.T) {
		before, err := storage.Count(ctx, "acme")
		require.NoError(t, err)

		req := ingestRequest(time.Now().UTC(), "BOGUS")
		_, err = service.Ingest(ctx, "acme", &req)
		assert.ErrorIs(t, err, interfaces.ErrInvalidPayload)

		after, err := storage.Count(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestService_IngestBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("All valid", func(t *testing.T) {
		service, _ := newTestService(t)

		reqs := make([]models.LogIngestRequest, 5)
		for i := range reqs {
			reqs[i] = ingestRequest(time.Now().UTC(), models.StatusSuccess)
		}

		results, err := service.IngestBatch(ctx, "acme", reqs)
		require.NoError(t, err)
		require.Len(t, results, 5)
		for i, result := range results {
			assert.Equal(t, i, result.Index)
			assert.NotEmpty(t, result.LogID)
			assert.Empty(t, result.Error)
		}
	})

	t.Run("Oversized batch rejected before any write", func(t *testing.T) {
		service, storage := newTestService(t)

		reqs := make([]models.LogIngestRequest, 101)
		for i := range reqs {
			reqs[i] = ingestRequest(time.Now().UTC(), models.StatusSuccess)
		}

		_, err := service.IngestBatch(ctx, "acme", reqs)
		assert.ErrorIs(t, err, interfaces.ErrBatchTooLarge)

		count, err := storage.Count(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Invalid candidate does not roll back earlier commits", func(t *testing.T) {
		service, storage := newTestService(t)

		reqs := []models.LogIngestRequest{
			ingestRequest(time.Now().UTC(), models.StatusSuccess),
			ingestRequest(time.Now().UTC(), "BOGUS"),
			ingestRequest(time.Now().UTC(), models.StatusError),
		}

		results, err := service.IngestBatch(ctx, "acme", reqs)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.NotEmpty(t, results[0].LogID)
		assert.Empty(t, results[1].LogID)
		assert.Contains(t, results[1].Error, "status must be one of")
		assert.NotEmpty(t, results[2].LogID)

		count, err := storage.Count(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestService_GetLog_CrossTenant(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	req := ingestRequest(time.Now().UTC(), models.StatusSuccess)
	log, err := service.Ingest(ctx, "acme", &req)
	require.NoError(t, err)

	_, err = service.GetLog(ctx, "globex", log.ID)
	crossTenantErr := err

	_, err = service.GetLog(ctx, "globex", "log_does-not-exist")
	missingErr := err

	// A foreign record and a missing record look identical to the caller
	assert.ErrorIs(t, crossTenantErr, interfaces.ErrLogNotFound)
	assert.ErrorIs(t, missingErr, interfaces.ErrLogNotFound)
	assert.Equal(t, missingErr.Error(), crossTenantErr.Error())
}

func TestService_ListLogs(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		req := ingestRequest(base.Add(time.Duration(i)*time.Minute), models.StatusSuccess)
		_, err := service.Ingest(ctx, "acme", &req)
		require.NoError(t, err)
	}

	t.Run("Rejects invalid pagination instead of clamping", func(t *testing.T) {
		_, _, err := service.ListLogs(ctx, "acme", models.LogFilter{}, 0, 10)
		assert.ErrorIs(t, err, interfaces.ErrInvalidQuery)

		_, _, err = service.ListLogs(ctx, "acme", models.LogFilter{}, 1, 0)
		assert.ErrorIs(t, err, interfaces.ErrInvalidQuery)

		_, _, err = service.ListLogs(ctx, "acme", models.LogFilter{}, 1, 101)
		assert.ErrorIs(t, err, interfaces.ErrInvalidQuery)
	})

	t.Run("Rejects inverted date range", func(t *testing.T) {
		start := base.Add(time.Hour)
		end := base
		_, _, err := service.ListLogs(ctx, "acme", models.LogFilter{StartDate: &start, EndDate: &end}, 1, 10)
		assert.ErrorIs(t, err, interfaces.ErrInvalidQuery)
	})

	t.Run("Pages union to the whole result set", func(t *testing.T) {
		seen := map[string]bool{}
		for page := 1; page <= 3; page++ {
			logs, total, err := service.ListLogs(ctx, "acme", models.LogFilter{}, page, 3)
			require.NoError(t, err)
			assert.Equal(t, 7, total)
			for _, log := range logs {
				assert.False(t, seen[log.ID], "record %s appeared on two pages", log.ID)
				seen[log.ID] = true
			}
		}
		assert.Len(t, seen, 7)
	})
}
