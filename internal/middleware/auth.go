package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/auth"
)

// TokenVerifier turns a bearer token into the id of the user it was issued to.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// NewAuthHandler returns a middleware that requires an "Authorization: Bearer"
// header carrying a token v accepts. The user id is stored on the request
// context for auth.UserID. Any failure is answered with 401.
func NewAuthHandler(v TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			userID, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				log.DebugContext(r.Context(), "token rejected", "error", err)
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// writeError writes the API error envelope. It mirrors handler.writeError,
// which this package cannot import.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
