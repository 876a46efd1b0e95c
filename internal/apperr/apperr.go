// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap these sentinels; the HTTP layer maps them with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/validation"
)

var (
	ErrUnauthenticated    = gate.ErrUnauthenticated
	ErrForbidden          = gate.ErrForbidden
	ErrNotFound           = errors.New("not_found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrValidation         = errors.New("validation_failed")
	// ErrAlreadyResolved is a Conflict raised when a decided leave request is decided again.
	ErrAlreadyResolved = fmt.Errorf("%w: leave request already resolved", ErrConflict)
)

// ValidationError carries per-field violations and matches ErrValidation.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a ValidationError for v, or nil when v is empty.
func Invalid(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Fields: v}
}

// InvalidField is Invalid for a single field.
func InvalidField(field, code string) error {
	return &ValidationError{Fields: validation.Violations{field: code}}
}

// NotFound wraps ErrNotFound with the kind of entity that was missing.
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// Violations returns the field violations carried by err, if any.
func Violations(err error) validation.Violations {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
