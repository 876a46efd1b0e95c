// Package gate is the access gate of the HR service. Every inbound operation
// passes through it before reaching the record store, the leave workflow, or
// the reporting engine.
//
// Authorization happens in two layers:
//   - Authorize turns a bearer token into a Principal and checks the role
//     an operation requires (exact match, no hierarchy).
//   - Can/Allow check a "resource:action" permission against the role's
//     grants and then, when a resource is given, the resource's Policy
//     (ownership, admin bypass).
//
// The package does not know about persistence; identity existence is
// delegated to an IdentityResolver.
package gate

import (
	"context"
	"fmt"
	"strings"
)

// Verifier turns a signed token into the principal it was issued for.
type Verifier interface {
	Verify(token string) (Principal, error)
}

// IdentityResolver reports the stored role of an identity.
// It returns an empty Role and a nil error when the identity does not exist.
type IdentityResolver interface {
	Resolve(ctx context.Context, id string) (Role, error)
}

// Gate is the central authorization checkpoint.
type Gate struct {
	verifier Verifier
	resolver IdentityResolver
	grants   map[Role]Grants
	policies map[string]Policy
}

// Option configures a Gate.
type Option func(*Gate)

// WithResolver makes Authorize confirm that the token subject still exists
// and still holds the role written in the token.
func WithResolver(r IdentityResolver) Option {
	return func(g *Gate) { g.resolver = r }
}

// New creates a Gate that verifies tokens with v.
func New(v Verifier, opts ...Option) *Gate {
	g := &Gate{
		verifier: v,
		grants:   DefaultGrants(),
		policies: make(map[string]Policy),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds a policy for a resource type (e.g., "leave").
// Overwrites any existing policy for that type.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize verifies token and, when required is non-empty, checks that the
// principal's role equals one of the required roles.
// Returns ErrUnauthenticated for an absent or invalid claim and ErrForbidden
// for a role mismatch. A resolver failure is returned wrapped and matches
// neither sentinel. It never mutates identity state.
func (g *Gate) Authorize(ctx context.Context, token string, required ...Role) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" || g.verifier == nil {
		return Principal{}, ErrUnauthenticated
	}
	p, err := g.verifier.Verify(token)
	if err != nil || p.IsZero() || !p.Role.Valid() {
		return Principal{}, ErrUnauthenticated
	}
	if g.resolver != nil {
		stored, err := g.resolver.Resolve(ctx, p.ID)
		if err != nil {
			return Principal{}, fmt.Errorf("resolve identity: %w", err)
		}
		if stored != p.Role {
			return Principal{}, ErrUnauthenticated
		}
	}
	if len(required) == 0 {
		return p, nil
	}
	for _, r := range required {
		if p.Role == r {
			return p, nil
		}
	}
	return Principal{}, ErrForbidden
}

// Allow checks that p holds resourceType:action and, if a policy exists for
// resourceType and resource is non-nil, that the policy accepts it.
func (g *Gate) Allow(ctx context.Context, p Principal, action Action, resourceType string, resource any) error {
	if p.IsZero() {
		return ErrUnauthenticated
	}
	if !g.grants[p.Role].Allows(NewPermission(resourceType, action)) {
		return ErrForbidden
	}
	if resource != nil {
		if policy, ok := g.policies[resourceType]; ok && !policy.Can(ctx, p, action, resource) {
			return ErrForbidden
		}
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(ctx context.Context, p Principal, action Action, resourceType string, resource any) bool {
	return g.Allow(ctx, p, action, resourceType, resource) == nil
}
