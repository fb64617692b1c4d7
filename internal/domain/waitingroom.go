package domain

import "time"

// WaitingRoom is the queue entry for a patient who has arrived for a
// scheduled consultation. At most one per consultation; deactivated rather
// than deleted once the doctor is notified or the consultation ends.
type WaitingRoom struct {
	ID                   int64      `json:"id" db:"id"`
	ConsultationID       int64      `json:"consultation_id" db:"consultation_id"`
	PatientJoinedAt      time.Time  `json:"patient_joined_at" db:"patient_joined_at"`
	DoctorNotifiedAt     *time.Time `json:"doctor_notified_at,omitempty" db:"doctor_notified_at"`
	EstimatedWaitMinutes int        `json:"estimated_wait_minutes" db:"estimated_wait_minutes"`
	QueuePosition        int        `json:"queue_position" db:"queue_position"`
	IsActive             bool       `json:"is_active" db:"is_active"`
	LastActivity         time.Time  `json:"last_activity" db:"last_activity"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// IsPatientWaiting reports whether the patient is still waiting to be seen.
// Once the doctor is notified the entry stays active but no longer counts.
func (w *WaitingRoom) IsPatientWaiting() bool {
	return w.IsActive && w.DoctorNotifiedAt == nil
}

// IsStale reports whether the entry has seen no activity for longer than the
// threshold. Staff tooling uses this to surface abandoned sessions.
func (w *WaitingRoom) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(w.LastActivity) > threshold
}

// ActualWaitTime is the number of whole minutes between the patient joining
// and the doctor being notified (or now, if not yet notified).
func (w *WaitingRoom) ActualWaitTime(now time.Time) int {
	until := now
	if w.DoctorNotifiedAt != nil {
		until = *w.DoctorNotifiedAt
	}
	minutes := int(until.Sub(w.PatientJoinedAt) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// DefaultStaleThreshold is the wait-abandonment threshold used when the
// caller does not supply one.
const DefaultStaleThreshold = 60 * time.Minute

// WaitingRoomStatus is the query-surface view of a waiting room with the
// derived fields the roster and patient screens need.
type WaitingRoomStatus struct {
	WaitingRoom
	ActualWaitMinutes int  `json:"actual_wait_minutes"`
	Stale             bool `json:"stale"`
	PatientWaiting    bool `json:"patient_waiting"`
}
