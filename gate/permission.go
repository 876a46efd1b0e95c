package gate

import "strings"

// Permission grants one action on one resource type.
// Format: "resource:action" (e.g., "leave:create", "employee:list").
type Permission string

// NewPermission builds a permission from resource type and action.
func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resourceType string, action Action) {
	resourceType, act, ok := strings.Cut(string(p), ":")
	if !ok {
		return "", ""
	}
	return resourceType, Action(act)
}

const (
	WildcardAll   = "*"
	PermissionAll Permission = "*:*"
)

// Matches reports whether p covers the requested permission.
// "*:*" matches everything and "leave:*" matches every leave action.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res != "" && res == reqRes && string(act) == WildcardAll
}

// Grants is the set of permissions held by a role.
type Grants []Permission

// Allows reports whether any grant matches the requested permission.
func (g Grants) Allows(requested Permission) bool {
	for _, perm := range g {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}
