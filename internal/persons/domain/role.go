package domain

import "fmt"

// Role is the closed set of authorization roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts the stored or claimed form into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Is reports whether r is exactly want. Undeclared values never match, not
// even each other.
func (r Role) Is(want Role) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return r == want
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
