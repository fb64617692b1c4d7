package domain

import (
	"time"
)

type ConsultationStatus string

const (
	ConsultationStatusScheduled  ConsultationStatus = "scheduled"
	ConsultationStatusWaiting    ConsultationStatus = "waiting"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusCompleted  ConsultationStatus = "completed"
	ConsultationStatusCancelled  ConsultationStatus = "cancelled"
	ConsultationStatusNoShow     ConsultationStatus = "no_show"
)

// IsTerminal reports whether no further transition is possible.
func (s ConsultationStatus) IsTerminal() bool {
	return s == ConsultationStatusCompleted || s == ConsultationStatusCancelled || s == ConsultationStatusNoShow
}

// Time windows around the scheduled start. Patients may enter the waiting
// room earlier than a doctor may start the session.
const (
	StartWindowBefore = 15 * time.Minute
	StartWindowAfter  = 60 * time.Minute
	JoinWindowBefore  = 30 * time.Minute
	JoinWindowAfter   = 120 * time.Minute
	OverdueAfter      = 60 * time.Minute
)

type ConnectionQuality string

const (
	ConnectionQualityExcellent ConnectionQuality = "excellent"
	ConnectionQualityGood      ConnectionQuality = "good"
	ConnectionQualityFair      ConnectionQuality = "fair"
	ConnectionQualityPoor      ConnectionQuality = "poor"
)

// Consultation is one virtual-visit session, tied to at most one booking.
type Consultation struct {
	ID                int64              `json:"id" db:"id"`
	BookingID         *int64             `json:"booking_id,omitempty" db:"booking_id"`
	DoctorID          int64              `json:"doctor_id" db:"doctor_id"`
	PatientID         int64              `json:"patient_id" db:"patient_id"`
	Provider          VideoProvider      `json:"provider" db:"provider"`
	MeetingID         *string            `json:"meeting_id,omitempty" db:"meeting_id"`
	MeetingURL        *string            `json:"meeting_url,omitempty" db:"meeting_url"`
	MeetingPassword   *string            `json:"-" db:"meeting_password"`
	Status            ConsultationStatus `json:"status" db:"status"`
	ScheduledStart    time.Time          `json:"scheduled_start" db:"scheduled_start"`
	ActualStart       *time.Time         `json:"actual_start,omitempty" db:"actual_start"`
	ActualEnd         *time.Time         `json:"actual_end,omitempty" db:"actual_end"`
	DurationMinutes   *int               `json:"duration_minutes,omitempty" db:"duration_minutes"`
	RecordingEnabled  bool               `json:"recording_enabled" db:"recording_enabled"`
	RecordingURL      *string            `json:"recording_url,omitempty" db:"recording_url"`
	ConnectionQuality *ConnectionQuality `json:"connection_quality,omitempty" db:"connection_quality"`
	Notes             *string            `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time         `json:"-" db:"deleted_at"`
}

// awaitingStart covers the pre-session states: scheduled, and waiting once
// the patient has entered the waiting room.
func (c *Consultation) awaitingStart() bool {
	return c.Status == ConsultationStatusScheduled || c.Status == ConsultationStatusWaiting
}

// CanStart reports whether a doctor may start the session at the given
// instant. Pure predicate, no side effects.
func (c *Consultation) CanStart(now time.Time) bool {
	if !c.awaitingStart() {
		return false
	}
	return !now.Before(c.ScheduledStart.Add(-StartWindowBefore)) &&
		!now.After(c.ScheduledStart.Add(StartWindowAfter))
}

// CanJoinWaitingRoom uses a wider window than CanStart because patients are
// allowed to arrive early.
func (c *Consultation) CanJoinWaitingRoom(now time.Time) bool {
	if !c.awaitingStart() {
		return false
	}
	return !now.Before(c.ScheduledStart.Add(-JoinWindowBefore)) &&
		!now.After(c.ScheduledStart.Add(JoinWindowAfter))
}

// IsOverdue signals the need for staff intervention. It never transitions
// the consultation by itself.
func (c *Consultation) IsOverdue(now time.Time) bool {
	return c.awaitingStart() && now.After(c.ScheduledStart.Add(OverdueAfter))
}

// BookingRef is the read-only booking record the core consumes when
// instantiating a consultation.
type BookingRef struct {
	BookingID       *int64    `json:"booking_id"`
	DoctorID        int64     `json:"doctor_id"`
	PatientID       int64     `json:"patient_id"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	AppointmentType string    `json:"appointment_type"`
}

type CreateConsultationDTO struct {
	BookingID        *int64    `json:"booking_id"`
	DoctorID         int64     `json:"doctor_id" binding:"required"`
	PatientID        int64     `json:"patient_id" binding:"required"`
	ScheduledStart   time.Time `json:"scheduled_start" binding:"required"`
	AppointmentType  string    `json:"appointment_type"`
	RecordingEnabled bool      `json:"recording_enabled"`
}

type UpdateConsultationDTO struct {
	Status            *ConsultationStatus `json:"status,omitempty"`
	ActualStart       *time.Time          `json:"actual_start,omitempty"`
	ActualEnd         *time.Time          `json:"actual_end,omitempty"`
	DurationMinutes   *int                `json:"duration_minutes,omitempty"`
	ScheduledStart    *time.Time          `json:"scheduled_start,omitempty"`
	RecordingURL      *string             `json:"recording_url,omitempty"`
	ConnectionQuality *ConnectionQuality  `json:"connection_quality,omitempty"`
	Notes             *string             `json:"notes,omitempty"`
}

type RescheduleDTO struct {
	ScheduledStart time.Time `json:"scheduled_start" binding:"required"`
}

// ConsultationAvailability is the presentation-facing snapshot of the
// time-window guards at one instant.
type ConsultationAvailability struct {
	Status             ConsultationStatus `json:"status"`
	ScheduledStart     time.Time          `json:"scheduled_start"`
	CanStart           bool               `json:"can_start"`
	CanJoinWaitingRoom bool               `json:"can_join_waiting_room"`
	IsOverdue          bool               `json:"is_overdue"`
}

type ConsultationFilter struct {
	DoctorID      *int64              `json:"doctor_id"`
	PatientID     *int64              `json:"patient_id"`
	Status        *ConsultationStatus `json:"status"`
	ScheduledFrom *time.Time          `json:"scheduled_from"`
	ScheduledTo   *time.Time          `json:"scheduled_to"`
	Limit         int                 `json:"limit"`
	Offset        int                 `json:"offset"`
}
