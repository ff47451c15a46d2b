package errors

import "net/http"

// Error codes returned by the ops API. Messages are English only; clients
// key on Code.

// Announcement error codes.
const (
	CodeAudienceInvalid     = "AUDIENCE_INVALID"
	CodeNotificationInvalid = "NOTIFICATION_INVALID"
)

// Sweep error codes.
const (
	CodeSweepUnknown        = "SWEEP_UNKNOWN"
	CodeSweepAlreadyRunning = "SWEEP_ALREADY_RUNNING"
	CodePoolUnavailable     = "POOL_UNAVAILABLE"
)

// Generic error codes.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrSweepUnknownf creates a 404 for a sweep kind that does not exist.
func ErrSweepUnknownf(kind string) *AppError {
	return NotFound(CodeSweepUnknown, "unknown sweep kind").
		WithParams(map[string]interface{}{"kind": kind})
}

// ErrSweepAlreadyRunningf creates a 409 for a sweep that is still in progress.
func ErrSweepAlreadyRunningf(kind string) *AppError {
	return Conflict(CodeSweepAlreadyRunning, "sweep is already running").
		WithParams(map[string]interface{}{"kind": kind})
}

// ErrAudienceInvalid wraps an audience resolution failure as a 400.
func ErrAudienceInvalid(err error) *AppError {
	return Wrap(err, CodeAudienceInvalid, "announcement audience is invalid", http.StatusBadRequest)
}
