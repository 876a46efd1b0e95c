// Package validation collects field-level violations for request input.
package validation

import (
	"net/mail"
	"slices"
	"strings"
	"time"
)

// Violations maps a field path (e.g. "personalDetails.gender") to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records a violation unless one is already set for field.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, "required")
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.Add(field, "invalid_email")
	}
}

func NonNegative(field string, val float64, v Violations) {
	if val < 0 {
		v.Add(field, "must_not_be_negative")
	}
}

// OneOf checks that value is one of allowed. Empty values are skipped.
func OneOf[T ~string](field string, value T, allowed []T, v Violations) {
	if value == "" {
		return
	}
	if !slices.Contains(allowed, value) {
		v.Add(field, "invalid_value")
	}
}

// NotBefore checks that end is not earlier than start.
func NotBefore(field string, start, end time.Time, v Violations) {
	if end.Before(start) {
		v.Add(field, "before_start")
	}
}

// Date parses a calendar date ("2006-01-02") or an RFC 3339 timestamp.
func Date(field, value string, v Violations) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, "required")
		return time.Time{}
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	v.Add(field, "invalid_date")
	return time.Time{}
}
