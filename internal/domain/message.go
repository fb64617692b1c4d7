package domain

import "time"

type MessageType string

const (
	MessageTypeText              MessageType = "text"
	MessageTypeSystem            MessageType = "system"
	MessageTypeFile              MessageType = "file"
	MessageTypePrescriptionShare MessageType = "prescription_share"
)

// ConsultationMessage is one ordered, append-only entry in a consultation's
// timeline. Immutable once created; the persisted order is the contract for
// replay after a reconnect.
type ConsultationMessage struct {
	ID             int64       `json:"id" db:"id"`
	ConsultationID int64       `json:"consultation_id" db:"consultation_id"`
	SenderID       int64       `json:"sender_id" db:"sender_id"`
	Type           MessageType `json:"message_type" db:"message_type"`
	Content        string      `json:"content" db:"content"`
	IsPrivate      bool        `json:"is_private" db:"is_private"`
	FileURL        *string     `json:"file_url,omitempty" db:"file_url"`
	FileName       *string     `json:"file_name,omitempty" db:"file_name"`
	FileSize       *int64      `json:"file_size,omitempty" db:"file_size"`
	Timestamp      time.Time   `json:"timestamp" db:"created_at"`

	// Populated by joins for history queries.
	SenderRole *UserRole `json:"sender_role,omitempty" db:"sender_role"`
}

type CreateMessageDTO struct {
	Type      MessageType `json:"message_type" binding:"required,oneof=text system file prescription_share"`
	Content   string      `json:"content" binding:"required"`
	IsPrivate bool        `json:"is_private"`
	FileURL   *string     `json:"file_url,omitempty"`
	FileName  *string     `json:"file_name,omitempty"`
	FileSize  *int64      `json:"file_size,omitempty"`
}

type MessageFilter struct {
	ConsultationID int64        `json:"consultation_id"`
	SenderID       *int64       `json:"sender_id"`
	Type           *MessageType `json:"message_type"`
	// IncludePrivate is set only for callers whose role carries the
	// private-message capability.
	IncludePrivate bool `json:"include_private"`
	Limit          int  `json:"limit"`
	Offset         int  `json:"offset"`
}
