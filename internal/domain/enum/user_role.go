package enum

// UserRole represents the access level of a till user
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleAttendant UserRole = "attendant"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleAttendant
}
