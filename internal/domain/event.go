package domain

import "time"

// EventType enumerates what the real-time channel carries.
type EventType string

const (
	EventChatMessage            EventType = "chat_message"
	EventUserJoined             EventType = "user_joined"
	EventUserLeft               EventType = "user_left"
	EventConsultationStarted    EventType = "consultation_started"
	EventConsultationEnded      EventType = "consultation_ended"
	EventPatientWaiting         EventType = "patient_waiting"
	EventTechnicalIssueReported EventType = "technical_issue_reported"
	EventConsultationStatus     EventType = "consultation_status"
)

// Event is the uniform envelope carried over the real-time channel. Events
// for a single consultation are delivered to all subscribers in the order
// they were accepted by the hub.
type Event struct {
	Type           EventType   `json:"type"`
	ConsultationID int64       `json:"consultation_id"`
	Payload        interface{} `json:"payload,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`

	// Private marks events that must only reach subscribers whose role
	// carries the private-message capability. Not serialized; the hub
	// filters on it before fan-out.
	Private bool `json:"-"`
}

// NewEvent stamps an envelope with the current instant.
func NewEvent(t EventType, consultationID int64, payload interface{}) Event {
	return Event{
		Type:           t,
		ConsultationID: consultationID,
		Payload:        payload,
		Timestamp:      time.Now().UTC(),
	}
}
