package service

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"telemed/config"
	"telemed/internal/domain"
	"telemed/internal/repository"
	"telemed/internal/storage"
)

// EventPublisher fans an event out to every current subscriber of the
// event's consultation. The websocket hub implements it; tests inject a
// recording fake.
type EventPublisher interface {
	Publish(event domain.Event)
}

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	Publisher   EventPublisher
	FileStorage storage.FileStorage
}

type Services struct {
	Consultation ConsultationService
	WaitingRoom  WaitingRoomService
	Participant  ParticipantService
	Message      MessageService
	Issue        IssueService
	Provider     ProviderService
}

func NewServices(deps Deps) *Services {
	provider := NewProviderService(deps.Repos.Provider, deps.Logger)
	message := NewMessageService(deps.Repos.Message, deps.Repos.Participant, deps.Publisher, deps.FileStorage, deps.Logger)
	issue := NewIssueService(deps.Repos.Issue, deps.Repos.Participant, deps.Publisher, deps.Logger)
	return &Services{
		Provider:     provider,
		Message:      message,
		Issue:        issue,
		Consultation: NewConsultationService(deps.Repos.Consultation, deps.Repos.WaitingRoom, deps.Repos.Participant, provider, message, deps.Publisher, deps.Config, deps.Logger),
		WaitingRoom:  NewWaitingRoomService(deps.Repos.WaitingRoom, deps.Repos.Consultation, deps.Publisher, deps.Config, deps.Logger),
		Participant:  NewParticipantService(deps.Repos.Participant, deps.Repos.Consultation, issue, deps.Publisher, deps.Logger),
	}
}

type ConsultationService interface {
	Create(ctx context.Context, identity domain.Identity, dto domain.CreateConsultationDTO) (*domain.Consultation, error)
	GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error)
	List(ctx context.Context, identity domain.Identity, filter domain.ConsultationFilter) ([]domain.Consultation, int, error)
	Start(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error)
	End(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error)
	Cancel(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error)
	MarkNoShow(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error)
	Reschedule(ctx context.Context, identity domain.Identity, id int64, newStart domain.RescheduleDTO) (*domain.Consultation, error)
	UpdateDetails(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateConsultationDTO) (*domain.Consultation, error)
	Availability(ctx context.Context, identity domain.Identity, id int64) (*domain.ConsultationAvailability, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}

type WaitingRoomService interface {
	Join(ctx context.Context, identity domain.Identity, consultationID int64) (*domain.WaitingRoom, error)
	NotifyDoctor(ctx context.Context, identity domain.Identity, consultationID int64) (*domain.WaitingRoom, error)
	Get(ctx context.Context, identity domain.Identity, consultationID int64) (*domain.WaitingRoomStatus, error)
	UpdateEstimatedWait(ctx context.Context, identity domain.Identity, consultationID int64, minutes int) error
	UpdateQueuePosition(ctx context.Context, identity domain.Identity, consultationID int64, position int) error
	ListActiveByDoctor(ctx context.Context, identity domain.Identity) ([]domain.WaitingRoomStatus, error)
}

type ParticipantService interface {
	Join(ctx context.Context, identity domain.Identity, consultationID int64, role domain.UserRole) (*domain.ConsultationParticipant, error)
	Leave(ctx context.Context, identity domain.Identity, consultationID int64) error
	Roster(ctx context.Context, identity domain.Identity, consultationID int64) ([]domain.ConsultationParticipant, error)
	// ActiveParticipants yields only the currently-joined participants.
	// The sequence is restartable: each range re-reads the loaded snapshot.
	ActiveParticipants(ctx context.Context, consultationID int64) (iter.Seq[domain.ConsultationParticipant], error)
}

type MessageService interface {
	Send(ctx context.Context, identity domain.Identity, consultationID int64, dto domain.CreateMessageDTO) (*domain.ConsultationMessage, error)
	SendSystem(ctx context.Context, consultationID int64, content string) (*domain.ConsultationMessage, error)
	AttachFile(ctx context.Context, identity domain.Identity, consultationID int64, filename string, data []byte, isPrivate bool) (*domain.ConsultationMessage, error)
	History(ctx context.Context, identity domain.Identity, consultationID int64, limit, offset int) ([]domain.ConsultationMessage, int64, error)
}

type IssueService interface {
	Report(ctx context.Context, identity domain.Identity, consultationID int64, dto domain.ReportIssueDTO) (*domain.TechnicalIssue, error)
	Resolve(ctx context.Context, identity domain.Identity, issueID int64, dto domain.ResolveIssueDTO) (*domain.TechnicalIssue, error)
	AutoResolve(ctx context.Context, issueID int64) (*domain.TechnicalIssue, error)
	// AutoResolveConnectionIssues closes the user's open connection issues
	// for the consultation, used when they rejoin.
	AutoResolveConnectionIssues(ctx context.Context, consultationID, reporterID int64) error
	ListByConsultation(ctx context.Context, identity domain.Identity, consultationID int64, openOnly bool) ([]domain.TechnicalIssue, error)
}

type ProviderService interface {
	List(ctx context.Context, identity domain.Identity) ([]domain.VideoProviderConfig, error)
	Get(ctx context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error)
	Update(ctx context.Context, identity domain.Identity, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error)
	UpdateCredentials(ctx context.Context, identity domain.Identity, provider domain.VideoProvider, dto domain.UpdateProviderCredentialsDTO) error
	// SelectProvider picks the lowest-priority-order provider that can
	// create a meeting and satisfies every required capability.
	SelectProvider(ctx context.Context, required []domain.ProviderCapability) (*domain.VideoProviderConfig, error)
	CreateMeeting(ctx context.Context, config *domain.VideoProviderConfig) (*domain.Meeting, error)
}
