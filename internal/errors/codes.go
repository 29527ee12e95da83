package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

const (
	CodeValidationError   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	CodeValidationError:   "Validation failed",
	CodeNotFound:          "Resource not found",
	CodeDatabaseError:     "Database connection error",
	CodeRateLimitExceeded: "Rate limit exceeded. Please try again later",
	CodeInternalError:     "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
