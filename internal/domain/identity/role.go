package identity

// Role is the closed set of marketplace roles. Role checks dispatch on
// this enum rather than raw strings so a missing case is caught by the
// exhaustive switches in the policy.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
	RoleBuyer  Role = "BUYER"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role, reporting whether it is valid
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
