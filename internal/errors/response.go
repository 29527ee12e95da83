package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// Response represents the standardized API error envelope
type Response struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

// Option is a functional option for configuring error responses
type Option func(*Response)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) Option {
	return func(r *Response) {
		r.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) Option {
	return func(r *Response) {
		r.Message = message
	}
}

// WithStack attaches a stack trace to the error response.
// Only the development error handler should use this.
func WithStack(stack string) Option {
	return func(r *Response) {
		r.Stack = stack
	}
}

// New creates a standardized error response for the given error code.
// Optional details can be added using functional options.
func New(code ErrorCode, opts ...Option) *Response {
	response := &Response{
		Status:  "error",
		Message: GetErrorMessage(code),
		Code:    string(code),
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError creates a validation error response with field-specific
// error details. fieldErrors is a map of field names to their error messages;
// details are emitted in field-name order so the envelope is deterministic.
func NewValidationError(fieldErrors map[string]string) *Response {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
	}

	return New(CodeValidationError, WithDetails(details...))
}

// NewValidationErrorFromList creates a validation error from a list of detail messages
func NewValidationErrorFromList(details []string) *Response {
	return New(CodeValidationError, WithDetails(details...))
}

// ToJSON serializes the error response to JSON bytes
func (r *Response) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeValidationError:
		return http.StatusBadRequest

	case CodeNotFound:
		return http.StatusNotFound

	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests

	case CodeDatabaseError:
		return http.StatusServiceUnavailable

	case CodeInternalError:
		return http.StatusInternalServerError

	default:
		// Unknown error codes default to 500
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (r *Response) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(r.Code))
}

// IsClientError returns true if the error is a 4xx client error
func (r *Response) IsClientError() bool {
	status := r.GetHTTPStatus()
	return status >= 400 && status < 500
}

// IsServerError returns true if the error is a 5xx server error
func (r *Response) IsServerError() bool {
	return r.GetHTTPStatus() >= 500
}

// String returns a string representation of the error response
func (r *Response) String() string {
	return fmt.Sprintf("[%s] %s", r.Code, r.Message)
}

// Error implements the error interface so a Response can travel through
// Echo's error chain and be unwrapped by the central error handler.
func (r *Response) Error() string {
	return r.String()
}
