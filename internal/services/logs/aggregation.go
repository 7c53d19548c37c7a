package logs

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ternarybob/chronicle/internal/interfaces"
	"github.com/ternarybob/chronicle/internal/models"
)

// round2 rounds to 2 decimal places for metric display
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// successRate computes 100*success/total rounded to 2 decimals, returning 0
// when total is 0 so an empty window never divides by zero
func successRate(success, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(success) / float64(total) * 100)
}

func (s *Service) windowBounds(days int) (time.Time, time.Time, error) {
	if days < 1 || days > s.limits.MaxMetricsDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: days must be between 1 and %d, got %d",
			interfaces.ErrInvalidQuery, s.limits.MaxMetricsDays, days)
	}
	now := time.Now().UTC()
	return now.AddDate(0, 0, -days), now, nil
}

// Overview computes the dashboard summary over the client's records executed
// in the last `days` days
func (s *Service) Overview(ctx context.Context, clientID string, days int) (*models.OverviewMetrics, error) {
	since, until, err := s.windowBounds(days)
	if err != nil {
		return nil, err
	}

	logs, err := s.storage.Window(ctx, clientID, since, until)
	if err != nil {
		return nil, err
	}

	metrics := &models.OverviewMetrics{PeriodDays: days}
	if len(logs) == 0 {
		return metrics, nil
	}

	var (
		success       int
		durationSum   float64
		durationCount int
	)
	for i := range logs {
		switch {
		case logs[i].Status == models.StatusSuccess:
			success++
		case models.IsErrorStatus(logs[i].Status):
			metrics.ErrorCount++
		}
		if logs[i].ExecutionTimeSeconds != nil {
			durationSum += *logs[i].ExecutionTimeSeconds
			durationCount++
		}
	}

	metrics.TotalTickets = len(logs)
	metrics.TotalLogs = len(logs)
	metrics.SuccessRate = successRate(success, len(logs))
	if durationCount > 0 {
		metrics.AvgExecutionTime = round2(durationSum / float64(durationCount))
	}

	return metrics, nil
}

// CategoryBreakdown groups the client's windowed records by category.
// Records without a category land in the "uncategorized" bucket. Buckets are
// ordered by descending count, then category name ascending, so output is
// deterministic.
func (s *Service) CategoryBreakdown(ctx context.Context, clientID string, days int) ([]models.CategoryMetrics, error) {
	since, until, err := s.windowBounds(days)
	if err != nil {
		return nil, err
	}

	logs, err := s.storage.Window(ctx, clientID, since, until)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		count   int
		success int
	}
	buckets := make(map[string]*bucket)
	for i := range logs {
		category := logs[i].Category
		if category == "" {
			category = models.UncategorizedBucket
		}
		b, ok := buckets[category]
		if !ok {
			b = &bucket{}
			buckets[category] = b
		}
		b.count++
		if logs[i].Status == models.StatusSuccess {
			b.success++
		}
	}

	breakdown := make([]models.CategoryMetrics, 0, len(buckets))
	for category, b := range buckets {
		breakdown = append(breakdown, models.CategoryMetrics{
			Category:     category,
			Count:        b.count,
			SuccessCount: b.success,
			SuccessRate:  successRate(b.success, b.count),
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count == breakdown[j].Count {
			return breakdown[i].Category < breakdown[j].Category
		}
		return breakdown[i].Count > breakdown[j].Count
	})

	return breakdown, nil
}
