package domain

import "time"

// ConsultationParticipant is the presence record for a (consultation, user)
// pair. Unique per pair; re-joining refreshes joined_at and clears left_at.
type ConsultationParticipant struct {
	ID               int64      `json:"id" db:"id"`
	ConsultationID   int64      `json:"consultation_id" db:"consultation_id"`
	UserID           int64      `json:"user_id" db:"user_id"`
	Role             UserRole   `json:"role" db:"role"`
	JoinedAt         *time.Time `json:"joined_at,omitempty" db:"joined_at"`
	LeftAt           *time.Time `json:"left_at,omitempty" db:"left_at"`
	ConnectionIssues int        `json:"connection_issues" db:"connection_issues"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// IsCurrentlyJoined reports whether the participant is connected right now.
func (p *ConsultationParticipant) IsCurrentlyJoined() bool {
	return p.JoinedAt != nil && p.LeftAt == nil
}

type JoinParticipantDTO struct {
	UserID int64    `json:"user_id" binding:"required"`
	Role   UserRole `json:"role" binding:"required,oneof=doctor patient observer assistant"`
}
