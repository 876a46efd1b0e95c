package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-hr/gate"
)

// tokenTable is a Verifier backed by a fixed token to principal map.
type tokenTable map[string]gate.Principal

func (t tokenTable) Verify(token string) (gate.Principal, error) {
	p, ok := t[token]
	if !ok {
		return gate.Principal{}, errors.New("bad token")
	}
	return p, nil
}

var (
	admin    = gate.Principal{ID: "a1", Role: gate.RoleAdmin}
	employee = gate.Principal{ID: "e1", Role: gate.RoleEmployee}
	tokens   = tokenTable{"admin-token": admin, "employee-token": employee}
)

// owned is a resource carrying its owner id.
type owned struct{ owner string }

type ownerPolicy struct{}

func (ownerPolicy) Can(_ context.Context, p gate.Principal, _ gate.Action, resource any) bool {
	o, ok := resource.(owned)
	return ok && (p.IsAdmin() || o.owner == p.ID)
}

func TestGate_Authorize_MissingToken(t *testing.T) {
	g := gate.New(tokens)
	for _, tok := range []string{"", "   "} {
		if _, err := g.Authorize(context.Background(), tok); !errors.Is(err, gate.ErrUnauthenticated) {
			t.Errorf("token %q: expected ErrUnauthenticated, got %v", tok, err)
		}
	}
}

func TestGate_Authorize_GarbageToken(t *testing.T) {
	g := gate.New(tokens)
	_, err := g.Authorize(context.Background(), "not-a-token", gate.RoleAdmin)
	if !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGate_Authorize_AnyAuthenticated(t *testing.T) {
	g := gate.New(tokens)
	p, err := g.Authorize(context.Background(), "employee-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != employee {
		t.Errorf("expected %+v, got %+v", employee, p)
	}
}

func TestGate_Authorize_EmployeeForbiddenForAdmin(t *testing.T) {
	g := gate.New(tokens)
	_, err := g.Authorize(context.Background(), "employee-token", gate.RoleAdmin)
	if !errors.Is(err, gate.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestGate_Authorize_NoHierarchy(t *testing.T) {
	g := gate.New(tokens)
	_, err := g.Authorize(context.Background(), "admin-token", gate.RoleEmployee)
	if !errors.Is(err, gate.ErrForbidden) {
		t.Errorf("admin must not satisfy an employee requirement, got %v", err)
	}
	if _, err := g.Authorize(context.Background(), "admin-token", gate.RoleEmployee, gate.RoleAdmin); err != nil {
		t.Errorf("expected admin to pass when listed, got %v", err)
	}
}

func TestGate_Authorize_ResolverRejectsUnknownIdentity(t *testing.T) {
	resolver := newStaticResolver()
	resolver.Set(admin.ID, gate.RoleAdmin)
	g := gate.New(tokens, gate.WithResolver(resolver))

	if _, err := g.Authorize(context.Background(), "admin-token", gate.RoleAdmin); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
	if _, err := g.Authorize(context.Background(), "employee-token"); !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for deleted identity, got %v", err)
	}
}

func TestGate_Authorize_ResolverRoleMismatch(t *testing.T) {
	resolver := newStaticResolver()
	resolver.Set(employee.ID, gate.RoleAdmin)
	g := gate.New(tokens, gate.WithResolver(resolver))

	if _, err := g.Authorize(context.Background(), "employee-token"); !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for stale role claim, got %v", err)
	}
}

func TestGate_Allow_Grants(t *testing.T) {
	g := gate.New(tokens)
	ctx := context.Background()

	if !g.Can(ctx, admin, gate.ActionView, "report", nil) {
		t.Error("admin should view reports")
	}
	if g.Can(ctx, employee, gate.ActionView, "report", nil) {
		t.Error("employee should not view reports")
	}
	if !g.Can(ctx, employee, gate.ActionCreate, "leave", nil) {
		t.Error("employee should file leave")
	}
	if err := g.Allow(ctx, gate.Principal{}, gate.ActionView, "profile", nil); !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for zero principal, got %v", err)
	}
}

func TestGate_Allow_Policy(t *testing.T) {
	g := gate.New(tokens)
	g.Register("leave", ownerPolicy{})
	ctx := context.Background()

	if !g.Can(ctx, employee, gate.ActionList, "leave", owned{owner: employee.ID}) {
		t.Error("owner should list own leave")
	}
	if err := g.Allow(ctx, employee, gate.ActionList, "leave", owned{owner: "someone-else"}); !errors.Is(err, gate.ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign leave, got %v", err)
	}
	if !g.Can(ctx, admin, gate.ActionList, "leave", owned{owner: employee.ID}) {
		t.Error("admin should list any leave")
	}
}

// unreachableStore fails every lookup, like a database that is down.
type unreachableStore struct{}

func (unreachableStore) Resolve(context.Context, string) (gate.Role, error) {
	return "", errStoreDown
}

var errStoreDown = errors.New("connection refused")

func TestGate_Authorize_ResolverFailure(t *testing.T) {
	g := gate.New(tokens, gate.WithResolver(unreachableStore{}))
	_, err := g.Authorize(context.Background(), "employee-token", gate.RoleEmployee)
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error to be returned, got %v", err)
	}
	if errors.Is(err, gate.ErrUnauthenticated) || errors.Is(err, gate.ErrForbidden) {
		t.Fatalf("store failure must not look like an access decision: %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := gate.ParseRole("admin"); !ok || r != gate.RoleAdmin {
		t.Errorf("expected admin, got %q %v", r, ok)
	}
	if _, ok := gate.ParseRole("superuser"); ok {
		t.Error("expected unknown role to be rejected")
	}
}
