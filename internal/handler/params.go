package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/auth"
)

// pathUUID binds the named chi URL parameter as a UUID. On failure it writes
// a 422 and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, fmt.Sprintf("invalid %s: must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer. On failure it writes a 422 and returns false.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		badRequest(w, fmt.Sprintf("invalid %s query parameter", name))
		return false
	}
	return true
}

// queryDate binds an optional "YYYY-MM-DD" query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, name string) (*civil.Date, bool) {
	var d *openapi_types.Date
	if !queryParam(w, r, name, &d) {
		return nil, false
	}
	if d == nil {
		return nil, true
	}
	cd := civil.DateOf(d.Time)
	return &cd, true
}

// userID returns the authenticated user. It writes a 401 when the request
// carries no identity, which only happens when a route is wired without auth.
func userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON decodes the request body, which must hold exactly one JSON
// value, into dst. On failure it writes the matching error response and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errTrailingData
			if isTooLarge(extra) {
				err = extra
			}
		}
	}
	if err == nil {
		return true
	}

	switch {
	case isTooLarge(err):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body is too large")
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	default:
		badRequest(w, "invalid JSON body: "+err.Error())
	}
	return false
}

var errTrailingData = errors.New("unexpected data after the JSON value")

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}
