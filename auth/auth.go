// Package auth issues and verifies bearer tokens, hashes credentials, and
// carries the authorized principal through request contexts.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/diewo77/go-hr/gate"
)

type ctxKey string

const principalCtxKey = ctxKey("principal")

// WithPrincipal stores the authorized principal in ctx.
func WithPrincipal(ctx context.Context, p gate.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFromContext extracts the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (gate.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(gate.Principal)
	if !ok || p.IsZero() {
		return gate.Principal{}, false
	}
	return p, true
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
