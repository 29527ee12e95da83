package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"txnledger/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API errors counter metric
	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of API errors by code, endpoint, and status",
		},
		[]string{"code", "endpoint", "status"},
	)
)

// NewHTTPErrorHandler returns a custom error handler for Echo that formats
// errors as standardized error envelopes and logs them appropriately.
// When development is true, unexpected errors carry a stack trace.
func NewHTTPErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "unknown"
		}

		var errorResponse *errors.Response
		var httpStatus int

		if resp, ok := err.(*errors.Response); ok {
			errorResponse = resp
			httpStatus = resp.GetHTTPStatus()
		} else if echoErr, ok := err.(*echo.HTTPError); ok {
			errorCode := mapHTTPStatusToErrorCode(echoErr.Code)
			message := fmt.Sprintf("%v", echoErr.Message)

			errorResponse = errors.New(errorCode, errors.WithMessage(message))
			httpStatus = echoErr.Code
		} else if validationErrs, ok := err.(validator.ValidationErrors); ok {
			// Handle validation errors from go-playground/validator
			fieldErrors := make(map[string]string)
			for _, fieldErr := range validationErrs {
				fieldErrors[fieldErr.Field()] = formatValidationError(fieldErr)
			}
			errorResponse = errors.NewValidationError(fieldErrors)
			httpStatus = http.StatusBadRequest
		} else {
			opts := []errors.Option{}
			if development {
				opts = append(opts, errors.WithStack(err.Error()+"\n"+string(debug.Stack())))
			}
			errorResponse = errors.New(errors.CodeInternalError, opts...)
			httpStatus = errorResponse.GetHTTPStatus()
		}

		logLevel := slog.LevelWarn
		if httpStatus >= 500 {
			logLevel = slog.LevelError
		}

		slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
			"trace_id", traceID,
			"error_code", errorResponse.Code,
			"status", httpStatus,
			"message", errorResponse.Message,
			"path", c.Request().URL.Path,
			"method", c.Request().Method,
			"error", err.Error(),
		)

		apiErrorsTotal.WithLabelValues(
			errorResponse.Code,
			c.Path(),
			fmt.Sprintf("%d", httpStatus),
		).Inc()

		if sendErr := c.JSON(httpStatus, errorResponse); sendErr != nil {
			slog.Error("Failed to send error response",
				"trace_id", traceID,
				"error", sendErr.Error(),
			)
		}
	}
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return errors.CodeValidationError
	case http.StatusNotFound:
		return errors.CodeNotFound
	case http.StatusMethodNotAllowed:
		return errors.CodeValidationError
	case http.StatusTooManyRequests:
		return errors.CodeRateLimitExceeded
	case http.StatusServiceUnavailable:
		return errors.CodeDatabaseError
	default:
		return errors.CodeInternalError
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "transaction_type":
		return "must be either credit or debit"
	case "iso8601":
		return "must be a valid ISO-8601 timestamp"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
