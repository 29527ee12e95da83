package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"txnledger/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errors.Response {
	t.Helper()
	var resp errors.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(false)
	handler(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, string(errors.CodeNotFound), resp.Code)
	assert.Equal(t, "Not Found", resp.Message)
}

func TestErrorHandler_PreparedResponsePassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(false)
	handler(errors.New(errors.CodeRateLimitExceeded), c)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Equal(t, string(errors.CodeRateLimitExceeded), resp.Code)
}

func TestErrorHandler_UnexpectedErrorInProduction(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(false)
	handler(fmt.Errorf("connection reset by peer"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Equal(t, string(errors.CodeInternalError), resp.Code)
	assert.Empty(t, resp.Stack, "internals must not leak outside development")
	assert.NotContains(t, resp.Message, "connection reset")
}

func TestErrorHandler_UnexpectedErrorInDevelopmentCarriesStack(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(true)
	handler(fmt.Errorf("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorBody(t, rec)
	assert.Contains(t, resp.Stack, "boom")
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.NoContent(http.StatusOK))

	handler := NewHTTPErrorHandler(false)
	handler(fmt.Errorf("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMapHTTPStatusToErrorCode(t *testing.T) {
	testCases := []struct {
		status int
		code   errors.ErrorCode
	}{
		{http.StatusBadRequest, errors.CodeValidationError},
		{http.StatusNotFound, errors.CodeNotFound},
		{http.StatusMethodNotAllowed, errors.CodeValidationError},
		{http.StatusTooManyRequests, errors.CodeRateLimitExceeded},
		{http.StatusServiceUnavailable, errors.CodeDatabaseError},
		{http.StatusBadGateway, errors.CodeInternalError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.code, mapHTTPStatusToErrorCode(tc.status), "status %d", tc.status)
	}
}
