package domain

// Actor identifies the authenticated caller of a lifecycle operation. It is
// passed explicitly into every operation that stamps an actor rather than
// read from ambient request state.
type Actor struct {
	ID           string
	Username     string
	Role         UserRole
	DepartmentID *string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
