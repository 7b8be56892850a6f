package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tipjar/internal/domain"
	"tipjar/internal/middleware"
)

func TestFailMapsErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("amount", "gt"), http.StatusBadRequest, "validation"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", &domain.ConflictError{Field: "email"}, http.StatusConflict, "conflict"},
		{"transition", &domain.InvalidTransitionError{DonationID: "d1", From: "failed", To: "confirmed"}, http.StatusConflict, "invalid_state_transition"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"unexpected", domain.Unexpected("op", errors.New("db down")), http.StatusInternalServerError, "internal"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	app := &App{Logger: zerolog.Nop()}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			require.Equal(t, tc.status, rec.Code)

			var body struct {
				Error errorBody `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.Error.Code)
			require.NotContains(t, body.Error.Message, "db down")
		})
	}
}

func TestFailLocalizesConflictField(t *testing.T) {
	app := &App{Logger: zerolog.Nop()}
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.LocaleKey, "th"))
	rec := httptest.NewRecorder()
	app.fail(rec, req, &domain.ConflictError{Field: "email"})
	require.Contains(t, rec.Body.String(), "อีเมลนี้มีผู้ใช้งานแล้ว")
}

func TestMessageFallsBackToEnglish(t *testing.T) {
	require.Equal(t, "Please sign in.", message("fr", "unauthorized"))
	require.Equal(t, "missing_key", message("th", "missing_key"))
	for key := range catalog["en"] {
		_, ok := catalog["th"][key]
		require.True(t, ok, "missing th message for %s", key)
	}
}

func TestRequireUser(t *testing.T) {
	app := &App{Logger: zerolog.Nop()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.LocaleKey, "th"))
	require.Empty(t, app.requireUser(rec, req))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	require.Contains(t, rec.Body.String(), "กรุณาเข้าสู่ระบบ")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "acct-1"))
	require.Equal(t, "acct-1", app.requireUser(rec, req))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}
