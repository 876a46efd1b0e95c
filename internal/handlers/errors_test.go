package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/apperr"
)

func TestWriteError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad body", fmt.Errorf("%w: eof", httpx.ErrBadBody), http.StatusBadRequest, "malformed_body"},
		{"validation", apperr.InvalidField("email", "taken"), http.StatusBadRequest, "validation_failed"},
		{"credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", apperr.NotFound("employee"), http.StatusNotFound, "not_found"},
		{"already resolved", apperr.ErrAlreadyResolved, http.StatusConflict, "already_resolved"},
		{"conflict", fmt.Errorf("bootstrap: %w", apperr.ErrConflict), http.StatusConflict, "conflict"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			writeError(rec, req, log, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body httpx.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tc.code {
				t.Fatalf("code = %q, want %q", body.Error, tc.code)
			}
			if tc.status == http.StatusInternalServerError && strings.Contains(rec.Body.String(), "disk") {
				t.Fatalf("internal error leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestWriteErrorValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodPost, "/x", nil), slog.New(slog.NewTextHandler(io.Discard, nil)),
		apperr.InvalidField("endDate", "before_start"))

	var body struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Details["endDate"] != "before_start" {
		t.Fatalf("details = %v", body.Details)
	}
}
