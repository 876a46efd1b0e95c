package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/internal/apperr"
)

// notFound maps gorm.ErrRecordNotFound to apperr.ErrNotFound and returns
// other errors unchanged.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return err
}

// isUniqueViolation reports a unique constraint failure. TranslateError
// covers postgres; sqlite drivers only surface it in the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// validID reports whether id is a well formed record id. Malformed ids are
// reported as NotFound by callers, never as validation errors.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// parseSeq parses a numeric leave request id.
func parseSeq(id string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
