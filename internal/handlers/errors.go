package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/apperr"
	"github.com/diewo77/go-hr/internal/logger"
)

// writeError maps a service error to its HTTP status and envelope.
// Unmapped errors are logged and reported as internal_error without detail.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, httpx.ErrBadBody):
		httpx.JSONError(w, http.StatusBadRequest, "malformed_body", nil)
	case errors.Is(err, apperr.ErrValidation):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", apperr.Violations(err))
	case errors.Is(err, apperr.ErrInvalidCredentials):
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
	case errors.Is(err, apperr.ErrUnauthenticated):
		httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
	case errors.Is(err, apperr.ErrForbidden):
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, apperr.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, apperr.ErrAlreadyResolved):
		httpx.JSONError(w, http.StatusConflict, "already_resolved", nil)
	case errors.Is(err, apperr.ErrConflict):
		httpx.JSONError(w, http.StatusConflict, "conflict", nil)
	default:
		log.ErrorContext(r.Context(), "request failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", logger.RequestID(r.Context()),
		)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
