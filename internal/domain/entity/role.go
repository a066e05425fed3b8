package entity

// Role is the closed set of account roles. Authorization decisions branch on
// these values only; free-form role strings are rejected at the boundary.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStaff   Role = "Staff"
	RoleAlumni  Role = "Alumni"
	RoleStudent Role = "Student"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleAlumni, RoleStudent:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// CanRespondToChatRequests reports whether the role may list or answer chat
// requests addressed to it.
func (r Role) CanRespondToChatRequests() bool {
	return r == RoleAlumni || r == RoleStaff
}
