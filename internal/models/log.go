package models

import (
	"encoding/json"
	"time"
)

// Environment values accepted at ingestion
const (
	EnvironmentProduction  = "production"
	EnvironmentStaging     = "staging"
	EnvironmentDevelopment = "development"
)

// Status values accepted at ingestion
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
	StatusPartial = "PARTIAL"
	StatusFailed  = "FAILED"
)

// ValidEnvironment reports whether v is one of the fixed environment values
func ValidEnvironment(v string) bool {
	switch v {
	case EnvironmentProduction, EnvironmentStaging, EnvironmentDevelopment:
		return true
	}
	return false
}

// ValidStatus reports whether v is one of the fixed status values
func ValidStatus(v string) bool {
	switch v {
	case StatusSuccess, StatusError, StatusPartial, StatusFailed:
		return true
	}
	return false
}

// IsErrorStatus reports whether v counts towards the error metric
func IsErrorStatus(v string) bool {
	return v == StatusError || v == StatusFailed
}

// UncategorizedBucket is the breakdown bucket for records without a category
const UncategorizedBucket = "uncategorized"

// WorkflowLog represents a single workflow execution record.
//
// ClientID is bound from the authenticated caller at ingestion and is the
// tenant isolation boundary: every read path filters on it. Records are
// immutable after creation.
//
// Metrics and Payload are opaque JSON documents stored and returned
// byte-for-byte; the service never interprets them. Status and Category are
// the only classification fields promoted to typed, indexed columns.
type WorkflowLog struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id" badgerhold:"index"`

	Environment     string `json:"environment" badgerhold:"index"`
	WorkflowVersion string `json:"workflow_version,omitempty"`

	TicketID             string    `json:"ticket_id,omitempty" badgerhold:"index"`
	ExecutedAt           time.Time `json:"executed_at" badgerhold:"index"`
	ExecutionTimeSeconds *float64  `json:"execution_time_seconds,omitempty"`

	Status           string `json:"status,omitempty" badgerhold:"index"`
	Category         string `json:"category,omitempty" badgerhold:"index"`
	ResolutionStatus string `json:"resolution_status,omitempty"`

	Metrics json.RawMessage `json:"metrics,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// LogFilter holds the optional query predicates. All present predicates are
// ANDed together; tenant scoping is applied separately and is not part of
// the filter (it cannot be overridden by callers).
type LogFilter struct {
	Environment string
	Status      string
	Category    string
	TicketID    string
	StartDate   *time.Time // Inclusive lower bound on ExecutedAt
	EndDate     *time.Time // Inclusive upper bound on ExecutedAt
}

// Matches reports whether the record satisfies every present predicate
func (f *LogFilter) Matches(log *WorkflowLog) bool {
	if f.Environment != "" && log.Environment != f.Environment {
		return false
	}
	if f.Status != "" && log.Status != f.Status {
		return false
	}
	if f.Category != "" && log.Category != f.Category {
		return false
	}
	if f.TicketID != "" && log.TicketID != f.TicketID {
		return false
	}
	if f.StartDate != nil && log.ExecutedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && log.ExecutedAt.After(*f.EndDate) {
		return false
	}
	return true
}

// OverviewMetrics is the aggregated dashboard summary over a time window
type OverviewMetrics struct {
	TotalTickets     int     `json:"total_tickets"`
	SuccessRate      float64 `json:"success_rate"`
	AvgExecutionTime float64 `json:"avg_execution_time"`
	ErrorCount       int     `json:"error_count"`
	TotalLogs        int     `json:"total_logs"`
	PeriodDays       int     `json:"period_days"`
}

// CategoryMetrics is one bucket of the per-category breakdown
type CategoryMetrics struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	SuccessCount int     `json:"success_count"`
	SuccessRate  float64 `json:"success_rate"`
}

// BatchItemResult is the per-candidate outcome of a batch ingest. Each
// candidate commits independently; a failed candidate never rolls back
// records already written for earlier candidates in the same batch.
type BatchItemResult struct {
	Index int    `json:"index"`
	LogID string `json:"log_id,omitempty"`
	Error string `json:"error,omitempty"`
}
