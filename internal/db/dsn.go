package db

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	kvPairRegex  = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)
	kvPasswordRe = regexp.MustCompile(`(?i)(password=)(\S+)`)
)

// NormalizeDSN accepts either a URL style DSN (postgres://...) or a key=value
// list. It trims quotes and whitespace and adds sslmode=disable to key=value
// lists that omit it.
func NormalizeDSN(raw string) string {
	s := strings.Trim(strings.TrimSpace(raw), "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// MaskDSN hides the password of a key=value or URL DSN for logging.
func MaskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			userinfo := u.User.String() + "@"
			masked := url.User(u.User.Username()).String() + ":***@"
			return strings.Replace(u.String(), userinfo, masked, 1)
		}
		return dsn
	}
	return kvPasswordRe.ReplaceAllString(dsn, `${1}***`)
}
