package gate_test

import (
	"context"

	"github.com/diewo77/go-hr/gate"
)

// staticResolver is an in-memory IdentityResolver that counts lookups.
type staticResolver struct {
	roles map[string]gate.Role
	Calls int
}

func newStaticResolver() *staticResolver {
	return &staticResolver{roles: make(map[string]gate.Role)}
}

func (s *staticResolver) Set(id string, role gate.Role) {
	s.roles[id] = role
}

func (s *staticResolver) Resolve(_ context.Context, id string) (gate.Role, error) {
	s.Calls++
	return s.roles[id], nil
}
