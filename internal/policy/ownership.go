package policy

import (
	"context"

	"github.com/diewo77/go-hr/gate"
)

// Owned is implemented by resources that belong to one identity.
type Owned interface {
	OwnerID() string
}

// Owner is an Owned value for routes that only know the owner id.
type Owner string

func (o Owner) OwnerID() string { return string(o) }

// OwnershipPolicy allows access when the principal owns the resource.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can denies resources that do not implement Owned.
func (p *OwnershipPolicy) Can(_ context.Context, principal gate.Principal, _ gate.Action, resource any) bool {
	owned, ok := resource.(Owned)
	if !ok {
		return false
	}
	return owned.OwnerID() != "" && owned.OwnerID() == principal.ID
}

// AdminBypassPolicy lets admins through and defers everyone else to inner.
type AdminBypassPolicy struct {
	inner gate.Policy
}

func NewAdminBypassPolicy(inner gate.Policy) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner}
}

func (p *AdminBypassPolicy) Can(ctx context.Context, principal gate.Principal, action gate.Action, resource any) bool {
	if principal.IsAdmin() {
		return true
	}
	return p.inner.Can(ctx, principal, action, resource)
}
