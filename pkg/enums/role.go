package enums

import "fmt"

// Role represents the system-wide permission role carried on every user.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

var validRoles = []Role{
	RoleOwner,
	RoleOfficer,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanReadAll reports whether the role has unrestricted read access to
// registry records.
func (r Role) CanReadAll() bool {
	return r == RoleOfficer || r == RoleAdmin
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
