// filepath: internal/api/handlers/utils.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Popap2/forymusic/internal/auth"
	"github.com/Popap2/forymusic/internal/services"
)

// parseIDFromRequest extracts the numeric {id} path variable.
func parseIDFromRequest(r *http.Request) (int64, error) {
	idStr := mux.Vars(r)["id"]
	return strconv.ParseInt(idStr, 10, 64)
}

// respondWithServiceError translates a service error into an HTTP status.
// Unrecognized errors are logged and reported as an internal failure so
// storage details never leak to API clients.
func (h *Handlers) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateAccount):
		respondWithError(w, http.StatusConflict, "Account with this email already exists")
	default:
		h.Logger.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// authorizeAdmin checks the admin token from the X-Admin-Token header or,
// as a fallback, the provided request-body token. It writes the 403 response
// itself so callers can simply return on false.
func (h *Handlers) authorizeAdmin(w http.ResponseWriter, r *http.Request, bodyToken string) bool {
	if h.Guard != nil && h.Guard.Authorize(auth.TokenFromRequest(r, bodyToken)) {
		return true
	}
	respondWithError(w, http.StatusForbidden, "Admin token missing or invalid")
	return false
}
