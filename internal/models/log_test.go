package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *LogIngestRequest {
	return &LogIngestRequest{
		Environment: EnvironmentProduction,
		ExecutedAt:  time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC),
		Status:      StatusSuccess,
	}
}

func TestLogIngestRequest_Validate(t *testing.T) {
	t.Run("Valid request passes", func(t *testing.T) {
		require.NoError(t, validRequest().Validate())
	})

	t.Run("Missing environment rejected", func(t *testing.T) {
		req := validRequest()
		req.Environment = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "environment is required")
	})

	t.Run("Unknown environment rejected", func(t *testing.T) {
		req := validRequest()
		req.Environment = "qa"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "environment must be one of")
	})

	t.Run("Missing executed_at rejected", func(t *testing.T) {
		req := validRequest()
		req.ExecutedAt = time.Time{}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executed_at is required")
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		req := validRequest()
		req.Status = "DONE"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status must be one of")
	})

	t.Run("Empty status allowed", func(t *testing.T) {
		req := validRequest()
		req.Status = ""
		require.NoError(t, req.Validate())
	})

	t.Run("Negative execution time rejected", func(t *testing.T) {
		req := validRequest()
		negative := -1.5
		req.ExecutionTimeSeconds = &negative
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "execution_time_seconds must not be negative")
	})

	t.Run("Zero execution time allowed", func(t *testing.T) {
		req := validRequest()
		zero := 0.0
		req.ExecutionTimeSeconds = &zero
		require.NoError(t, req.Validate())
	})
}

func TestValidStatus(t *testing.T) {
	for _, v := range []string{StatusSuccess, StatusError, StatusPartial, StatusFailed} {
		assert.True(t, ValidStatus(v), v)
	}
	assert.False(t, ValidStatus("success"))
	assert.False(t, ValidStatus(""))
}

func TestIsErrorStatus(t *testing.T) {
	assert.True(t, IsErrorStatus(StatusError))
	assert.True(t, IsErrorStatus(StatusFailed))
	assert.False(t, IsErrorStatus(StatusSuccess))
	assert.False(t, IsErrorStatus(StatusPartial))
	assert.False(t, IsErrorStatus(""))
}

func TestLogFilter_Matches(t *testing.T) {
	executed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	log := &WorkflowLog{
		Environment: EnvironmentProduction,
		Status:      StatusSuccess,
		Category:    "billing",
		TicketID:    "TICK-9",
		ExecutedAt:  executed,
	}

	t.Run("Empty filter matches everything", func(t *testing.T) {
		f := &LogFilter{}
		assert.True(t, f.Matches(log))
	})

	t.Run("All predicates are ANDed", func(t *testing.T) {
		f := &LogFilter{Environment: EnvironmentProduction, Status: StatusSuccess, Category: "billing"}
		assert.True(t, f.Matches(log))

		f.Status = StatusError
		assert.False(t, f.Matches(log))
	})

	t.Run("Ticket filter", func(t *testing.T) {
		f := &LogFilter{TicketID: "TICK-9"}
		assert.True(t, f.Matches(log))

		f.TicketID = "TICK-10"
		assert.False(t, f.Matches(log))
	})

	t.Run("Date bounds are inclusive", func(t *testing.T) {
		f := &LogFilter{StartDate: &executed, EndDate: &executed}
		assert.True(t, f.Matches(log))

		after := executed.Add(time.Second)
		f = &LogFilter{StartDate: &after}
		assert.False(t, f.Matches(log))

		before := executed.Add(-time.Second)
		f = &LogFilter{EndDate: &before}
		assert.False(t, f.Matches(log))
	})
}
