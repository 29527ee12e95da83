package handlers

import (
	"log/slog"

	"txnledger/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
//    Use cases:
//    - Validation errors: SendError(c, errors.CodeValidationError, errors.WithDetails("..."))
//    - Not found errors: SendError(c, errors.CodeNotFound)
//
// 2. SendDatabaseError - For datastore failures (503 responses)
//    Use cases:
//    - Errors surfaced from repositories other than not-found
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendDatabaseError instead
//    - Direct c.JSON() for errors - Use the helper functions
//    - return err without wrapping - Use SendDatabaseError to protect internal details

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error envelope type
// Used for decoding responses in tests
type ErrorResponse = errors.Response

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.Option) error {
	errorResponse := errors.New(code, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendDatabaseError sends a DATABASE_ERROR response and logs the internal error
func SendDatabaseError(c echo.Context, err error) error {
	slog.Error("database error",
		"trace_id", getTraceID(c),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	errorResponse := errors.New(errors.CodeDatabaseError)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}
