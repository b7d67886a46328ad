package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

type verifierFunc func(string) (uuid.UUID, error)

func (f verifierFunc) Verify(token string) (uuid.UUID, error) { return f(token) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthHandler_ValidToken(t *testing.T) {
	userID := uuid.New()
	v := verifierFunc(func(token string) (uuid.UUID, error) {
		assert.Equal(t, "good", token)
		return userID, nil
	})

	var seen uuid.UUID
	h := middleware.NewAuthHandler(v, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seen)
}

func TestAuthHandler_Rejects(t *testing.T) {
	v := verifierFunc(func(string) (uuid.UUID, error) { return uuid.Nil, errors.New("bad signature") })

	cases := map[string]string{
		"no header":    "",
		"wrong scheme": "Basic dXNlcjpwYXNz",
		"empty token":  "Bearer ",
		"bad token":    "Bearer forged",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			h := middleware.NewAuthHandler(v, discardLogger())(trivialHandler)

			req := httptest.NewRequest(http.MethodGet, "/trips", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"`+messageFor(header)+`"}}`, rec.Body.String())
		})
	}
}

func messageFor(header string) string {
	if header == "Bearer forged" {
		return "invalid bearer token"
	}
	return "missing bearer token"
}
