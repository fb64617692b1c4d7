package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"telemed/internal/domain"
)

// prefixColumns qualifies a comma-separated column list with a table alias
// for joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repositories struct {
	Consultation ConsultationRepository
	Participant  ParticipantRepository
	WaitingRoom  WaitingRoomRepository
	Message      MessageRepository
	Issue        IssueRepository
	Provider     ProviderRepository
}

func NewRepositories(db DB) *Repositories {
	return &Repositories{
		Consultation: NewConsultationRepository(db),
		Participant:  NewParticipantRepository(db),
		WaitingRoom:  NewWaitingRoomRepository(db),
		Message:      NewMessageRepository(db),
		Issue:        NewIssueRepository(db),
		Provider:     NewProviderRepository(db),
	}
}

type ConsultationRepository interface {
	Create(ctx context.Context, dto domain.CreateConsultationDTO, meeting domain.Meeting) (*domain.Consultation, error)
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	List(ctx context.Context, filter domain.ConsultationFilter) ([]domain.Consultation, error)
	CountByFilter(ctx context.Context, filter domain.ConsultationFilter) (int, error)
	Update(ctx context.Context, id int64, dto domain.UpdateConsultationDTO) error

	// Start is the compare-and-swap transition to in_progress: it succeeds
	// only while the stored status is still scheduled or waiting. Returns
	// false when the swap was lost.
	Start(ctx context.Context, id int64, now time.Time) (bool, error)

	// Complete moves in_progress to completed, recording the end instant and
	// duration. Returns false when the consultation was not in_progress.
	Complete(ctx context.Context, id int64, endedAt time.Time, durationMinutes int) (bool, error)

	// TransitionStatus applies to→from guarded status changes for cancel,
	// no-show and the scheduled→waiting hop. Returns false when the stored
	// status was not in the allowed set.
	TransitionStatus(ctx context.Context, id int64, from []domain.ConsultationStatus, to domain.ConsultationStatus) (bool, error)

	// Reschedule resets a non-terminal consultation back to scheduled and
	// clears the actual start/end and duration.
	Reschedule(ctx context.Context, id int64, newStart time.Time) (bool, error)

	// SoftDelete retains the row for audit while hiding it from queries.
	SoftDelete(ctx context.Context, id int64) error
}

type ParticipantRepository interface {
	// Join upserts the (consultation, user) presence row: first join creates
	// it, re-join refreshes joined_at and clears left_at.
	Join(ctx context.Context, consultationID, userID int64, role domain.UserRole, now time.Time) (*domain.ConsultationParticipant, error)
	Leave(ctx context.Context, consultationID, userID int64, now time.Time) (bool, error)
	GetByConsultationAndUser(ctx context.Context, consultationID, userID int64) (*domain.ConsultationParticipant, error)
	ListByConsultation(ctx context.Context, consultationID int64) ([]domain.ConsultationParticipant, error)
	IncrementConnectionIssues(ctx context.Context, consultationID, userID int64) error
}

type WaitingRoomRepository interface {
	GetByConsultationID(ctx context.Context, consultationID int64) (*domain.WaitingRoom, error)
	// CreateOrReactivate upserts the 0-or-1 row per consultation.
	CreateOrReactivate(ctx context.Context, consultationID int64, now time.Time, position, estimatedWaitMinutes int) (*domain.WaitingRoom, error)
	// CountWaitingAhead counts active, unnotified entries for the doctor's
	// other consultations that joined no later than the given instant.
	CountWaitingAhead(ctx context.Context, doctorID int64, joinedBefore time.Time) (int, error)
	NotifyDoctor(ctx context.Context, id int64, now time.Time) (*domain.WaitingRoom, error)
	UpdateEstimatedWait(ctx context.Context, id int64, minutes int) error
	UpdateQueuePosition(ctx context.Context, id int64, position int) error
	// DecrementPositionsForDoctor shifts every queued patient of the doctor
	// up by one; positions never drop below 1.
	DecrementPositionsForDoctor(ctx context.Context, doctorID int64) error
	ListActiveByDoctor(ctx context.Context, doctorID int64) ([]domain.WaitingRoom, error)
	Deactivate(ctx context.Context, consultationID int64) error
	TouchActivity(ctx context.Context, id int64, now time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, consultationID, senderID int64, dto domain.CreateMessageDTO) (*domain.ConsultationMessage, error)
	List(ctx context.Context, filter domain.MessageFilter) ([]domain.ConsultationMessage, error)
	Count(ctx context.Context, filter domain.MessageFilter) (int64, error)
}

type IssueRepository interface {
	Create(ctx context.Context, consultationID, reporterID int64, dto domain.ReportIssueDTO) (*domain.TechnicalIssue, error)
	GetByID(ctx context.Context, id int64) (*domain.TechnicalIssue, error)
	ListByConsultation(ctx context.Context, consultationID int64, openOnly bool) ([]domain.TechnicalIssue, error)
	Resolve(ctx context.Context, id int64, resolvedBy *int64, autoResolved bool, notes *string, now time.Time) (*domain.TechnicalIssue, error)
}

type ProviderRepository interface {
	GetByProvider(ctx context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error)
	List(ctx context.Context) ([]domain.VideoProviderConfig, error)
	Update(ctx context.Context, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error)
	UpdateCredentials(ctx context.Context, provider domain.VideoProvider, apiKey, apiSecret string) error
}
