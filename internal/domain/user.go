package domain

type UserRole string

const (
	UserRoleDoctor    UserRole = "doctor"
	UserRolePatient   UserRole = "patient"
	UserRoleObserver  UserRole = "observer"
	UserRoleAssistant UserRole = "assistant"
	UserRoleAdmin     UserRole = "admin"
)

// Identity is the authenticated caller as established by the auth subsystem.
// Every core operation receives one to enforce role-based guards.
type Identity struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
}

// CanSeePrivateMessages reports whether the role may read messages flagged
// is_private (medical staff only).
func (r UserRole) CanSeePrivateMessages() bool {
	return r == UserRoleDoctor || r == UserRoleAdmin
}

func ValidParticipantRole(r UserRole) bool {
	switch r {
	case UserRoleDoctor, UserRolePatient, UserRoleObserver, UserRoleAssistant:
		return true
	}
	return false
}
