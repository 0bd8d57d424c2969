package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/account-service/internal/service"
)

func TestToHTTP_KnownSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"user_blocked", service.ErrUserBlocked, http.StatusForbidden, "user_blocked"},
		{"user_not_found", service.ErrUserNotFound, http.StatusNotFound, "not_found"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"email_taken", service.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{"role_taken", service.ErrRoleTaken, http.StatusConflict, "role_taken"},
		{"invalid_email", service.ErrInvalidEmail, http.StatusBadRequest, "invalid_argument"},
		{"weak_password", service.ErrWeakPassword, http.StatusBadRequest, "invalid_argument"},
		{"empty_password", service.ErrEmptyPassword, http.StatusBadRequest, "invalid_argument"},
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"too_many_attempts", service.ErrTooManyAttempts, http.StatusTooManyRequests, "rate_limited"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Сентинелы приходят обёрнутыми сервисным слоем.
			status, resp := ToHTTP(fmt.Errorf("service.op: %w", tc.err))
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.code, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_UnknownError_DoesNotLeakDetails(t *testing.T) {
	t.Parallel()

	status, resp := ToHTTP(stderrors.New("pq: connection refused host=10.0.0.1"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal", resp.Error.Code)
	require.NotContains(t, resp.Error.Message, "10.0.0.1")
}

func TestToHTTP_NilError_Is500(t *testing.T) {
	t.Parallel()

	status, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal", resp.Error.Code)
}

func TestWriteError_SetsStatusBodyAndRequestID(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-123")

	WriteError(rr, req, service.ErrUserBlocked)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "user_blocked", resp.Error.Code)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}
