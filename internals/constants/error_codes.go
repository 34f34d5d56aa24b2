package constants

// Stable English error tags; user-facing messages stay Thai.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeStatePrecondition = "STATE_PRECONDITION"
	ErrCodeSlipRequired      = "SLIP_REQUIRED"
	ErrCodeConflictRetryable = "CONFLICT_RETRYABLE"
	ErrCodeExternal          = "EXTERNAL"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
)
