package entity

// Role is the capability level resolved once from the auth token and
// consumed uniformly by every handler and middleware.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw role claim to a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CanManageQueue reports whether the role may operate serving windows
// and issue walk-in tickets.
func (r Role) CanManageQueue() bool {
	return r == RoleStaff || r == RoleAdmin
}
