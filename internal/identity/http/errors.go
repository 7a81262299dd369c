package http

import (
	"errors"
	"net/http"

	"github.com/corrida-app/identity/internal/identity/service"
	"github.com/corrida-app/identity/pkg/httpx"
	"github.com/corrida-app/identity/pkg/slogx"
)

// writeServiceError maps classified service errors to status codes. Anything
// unclassified is an infrastructure fault: logged with detail, surfaced as an
// opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrRoleAlreadyHeld):
		httpx.WriteError(w, http.StatusConflict, "role already held")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccountNotActive):
		httpx.WriteError(w, http.StatusUnauthorized, "account not active")
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeLoginError additionally collapses unknown-CPF and wrong-password into
// one 401 body so login responses cannot be used to enumerate CPFs.
func writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeServiceError(w, r, err)
}

func writeValidationError(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, err.Error())
}
