package gate

import "context"

// Policy defines resource-level rules for one resource type.
// Implementations decide whether p may perform action on resource.
type Policy interface {
	// Can returns true if p is authorized to perform action on resource.
	// For list/create, resource may be nil (context-only check).
	Can(ctx context.Context, p Principal, action Action, resource any) bool
}
