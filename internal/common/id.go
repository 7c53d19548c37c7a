package common

import (
	"github.com/google/uuid"
)

// NewLogID generates a unique log record ID with the "log_" prefix
// Format: log_<uuid>
func NewLogID() string {
	return "log_" + uuid.New().String()
}
