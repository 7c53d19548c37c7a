package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LogIngestRequest is one candidate record submitted for ingestion.
//
// Validation is deliberately light (trust the client structure): only the
// fields the query and aggregation engines depend on are checked. There is
// no client_id field here; tenant identity always comes from the
// authenticated caller, never from the request body.
type LogIngestRequest struct {
	Environment string    `json:"environment" validate:"required,oneof=production staging development"`
	ExecutedAt  time.Time `json:"executed_at" validate:"required"`

	WorkflowVersion      string   `json:"workflow_version,omitempty"`
	TicketID             string   `json:"ticket_id,omitempty"`
	ExecutionTimeSeconds *float64 `json:"execution_time_seconds,omitempty" validate:"omitempty,gte=0"`
	Status               string   `json:"status,omitempty" validate:"omitempty,oneof=SUCCESS ERROR PARTIAL FAILED"`
	Category             string   `json:"category,omitempty"`
	ResolutionStatus     string   `json:"resolution_status,omitempty"`

	Metrics json.RawMessage `json:"metrics,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Validate checks the candidate record and returns a human-readable reason
// on the first violation. No partial validation state is kept; callers must
// not persist anything when an error is returned.
func (r *LogIngestRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reasons = append(reasons, reasonFor(fe))
	}
	return errors.New(strings.Join(reasons, "; "))
}

// reasonFor translates a validator field error into the message shape the
// API documents
func reasonFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "Environment":
		if fe.Tag() == "required" {
			return "environment is required"
		}
		return fmt.Sprintf("environment must be one of [%s %s %s]",
			EnvironmentProduction, EnvironmentStaging, EnvironmentDevelopment)
	case "ExecutedAt":
		return "executed_at is required"
	case "Status":
		return fmt.Sprintf("status must be one of [%s %s %s %s]",
			StatusSuccess, StatusError, StatusPartial, StatusFailed)
	case "ExecutionTimeSeconds":
		return "execution_time_seconds must not be negative"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
