package interfaces

import "errors"

// Error taxonomy for the service layer. Handlers map these to HTTP status
// codes with errors.Is; anything outside the taxonomy is treated as an
// internal storage failure and never exposed to the caller verbatim.
var (
	// ErrUnauthenticated is returned for a missing, empty or unknown API key
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidPayload is returned when a candidate record fails validation.
	// Nothing is persisted for the failing candidate.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrBatchTooLarge is returned when a batch exceeds the configured
	// maximum; the whole batch is rejected before any write
	ErrBatchTooLarge = errors.New("batch too large")

	// ErrInvalidQuery is returned for out-of-bounds pagination or window
	// parameters
	ErrInvalidQuery = errors.New("invalid query")

	// ErrLogNotFound is returned both when a record does not exist and when
	// it belongs to another client. The two cases are indistinguishable to
	// the caller.
	ErrLogNotFound = errors.New("log not found")
)
