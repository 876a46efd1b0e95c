package policy

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/logger"
)

// Resource types known to the gate.
const (
	ResourceEmployee   = "employee"
	ResourceProfile    = "profile"
	ResourceLeave      = "leave"
	ResourceDepartment = "department"
	ResourceReport     = "report"
)

// AuthGate is the configured gate of the service together with the cached
// identity resolver it consults.
type AuthGate struct {
	Gate     *gate.Gate
	Resolver *gate.CachedResolver
	Log      *slog.Logger
}

// NewAuthGate builds the gate: tokens are checked by verifier, identities
// are confirmed against the database through a cache kept for cacheTTL.
// Profiles and leave requests are guarded by ownership with admin bypass.
func NewAuthGate(db *gorm.DB, verifier gate.Verifier, cacheTTL time.Duration, log *slog.Logger) (*AuthGate, error) {
	cached, err := gate.NewCachedResolver(NewDBIdentityResolver(db), cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("identity cache: %w", err)
	}
	g := gate.New(verifier, gate.WithResolver(cached))
	owned := NewAdminBypassPolicy(NewOwnershipPolicy())
	g.Register(ResourceProfile, owned)
	g.Register(ResourceLeave, owned)
	return &AuthGate{Gate: g, Resolver: cached, Log: log}, nil
}

// Require authorizes the bearer token of the request. With roles given, the
// principal's role must equal one of them. The principal is stored in the
// request context for the handlers.
func (ag *AuthGate) Require(roles ...gate.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := ag.Gate.Authorize(r.Context(), auth.BearerToken(r), roles...)
			if err != nil {
				ag.deny(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePermission checks resourceType:action for the authorized principal.
// It must run after Require.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := auth.PrincipalFromContext(r.Context())
			if err := ag.Gate.Allow(r.Context(), p, action, resourceType, nil); err != nil {
				ag.deny(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnerOrAdmin checks resourceType:action against the identity named
// by the URL parameter param: the principal must own it or be an admin.
// It must run after Require.
func (ag *AuthGate) RequireOwnerOrAdmin(resourceType string, action gate.Action, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := auth.PrincipalFromContext(r.Context())
			owner := Owner(chi.URLParam(r, param))
			if err := ag.Gate.Allow(r.Context(), p, action, resourceType, owner); err != nil {
				ag.deny(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Close releases the identity cache.
func (ag *AuthGate) Close() {
	ag.Resolver.Close()
}

// deny answers a refused request. Errors other than the gate sentinels are
// store or collaborator faults: they are logged and reported as internal_error.
func (ag *AuthGate) deny(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gate.ErrUnauthenticated):
		httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
	case errors.Is(err, gate.ErrForbidden):
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
	default:
		ag.Log.ErrorContext(r.Context(), "authorization failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", logger.RequestID(r.Context()),
		)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
