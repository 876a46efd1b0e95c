package gate

// Role is the capability class of an identity. It is fixed when the identity is created.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole converts a claim or column value into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

func (r Role) String() string { return string(r) }

// Principal is the authorized identity behind a request.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsZero reports whether p carries no identity.
func (p Principal) IsZero() bool { return p.ID == "" }

// IsAdmin reports whether p holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// DefaultGrants is the role to permission table used when none is configured.
// Admins hold every permission; employees may read and edit their own profile
// and file and list their own leave requests.
func DefaultGrants() map[Role]Grants {
	return map[Role]Grants{
		RoleAdmin: {PermissionAll},
		RoleEmployee: {
			NewPermission("profile", ActionView),
			NewPermission("profile", ActionUpdate),
			NewPermission("leave", ActionCreate),
			NewPermission("leave", ActionList),
		},
	}
}
