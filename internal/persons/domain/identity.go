package domain

// Identity is the authenticated caller as resolved from a bearer token.
type Identity struct {
	UserID string
	Role   Role
	Email  string
}

// CanAccess is the single ownership predicate for person records: admins see
// everything, users only what they own, anything else nothing.
func CanAccess(id Identity, p Person) bool {
	switch id.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return id.UserID != "" && id.UserID == p.UserID
	default:
		return false
	}
}
