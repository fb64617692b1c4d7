package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"telemed/config"
	"telemed/internal/domain"
	"telemed/internal/repository"
)

type ConsultationServiceImpl struct {
	repo            repository.ConsultationRepository
	waitingRoomRepo repository.WaitingRoomRepository
	participantRepo repository.ParticipantRepository
	providers       ProviderService
	messages        MessageService
	publisher       EventPublisher
	cfg             *config.Config
	logger          *zap.Logger
	now             func() time.Time
}

func NewConsultationService(
	repo repository.ConsultationRepository,
	waitingRoomRepo repository.WaitingRoomRepository,
	participantRepo repository.ParticipantRepository,
	providers ProviderService,
	messages MessageService,
	publisher EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *ConsultationServiceImpl {
	return &ConsultationServiceImpl{
		repo:            repo,
		waitingRoomRepo: waitingRoomRepo,
		participantRepo: participantRepo,
		providers:       providers,
		messages:        messages,
		publisher:       publisher,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *ConsultationServiceImpl) Create(ctx context.Context, identity domain.Identity, dto domain.CreateConsultationDTO) (*domain.Consultation, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}

	var required []domain.ProviderCapability
	if dto.RecordingEnabled {
		required = append(required, domain.CapabilityRecording)
	}

	providerConfig, err := s.providers.SelectProvider(ctx, required)
	if err != nil {
		return nil, err
	}

	meeting, err := s.providers.CreateMeeting(ctx, providerConfig)
	if err != nil {
		return nil, err
	}

	consultation, err := s.repo.Create(ctx, dto, *meeting)
	if err != nil {
		s.logger.Error("failed to create consultation",
			zap.Int64("doctor_id", dto.DoctorID),
			zap.Int64("patient_id", dto.PatientID),
			zap.Error(err))
		return nil, fmt.Errorf("creating consultation: %w", err)
	}

	s.logger.Info("consultation created",
		zap.Int64("consultation_id", consultation.ID),
		zap.String("provider", string(consultation.Provider)),
		zap.Time("scheduled_start", consultation.ScheduledStart))

	return consultation, nil
}

func (s *ConsultationServiceImpl) GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error) {
	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *ConsultationServiceImpl) List(ctx context.Context, identity domain.Identity, filter domain.ConsultationFilter) ([]domain.Consultation, int, error) {
	// Non-admin callers only see their own consultations.
	switch identity.Role {
	case domain.UserRoleDoctor:
		filter.DoctorID = &identity.UserID
	case domain.UserRolePatient:
		filter.PatientID = &identity.UserID
	case domain.UserRoleAdmin:
	default:
		return nil, 0, domain.ErrNotAuthorized
	}

	consultations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return consultations, len(consultations), nil
	}

	return consultations, count, nil
}

// Start performs the guarded scheduled/waiting → in_progress transition.
// The repository swap is status-conditional, so of two racing doctors'
// clients exactly one wins; the loser gets ErrAlreadyStarted.
func (s *ConsultationServiceImpl) Start(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}

	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}

	now := s.now()
	if consultation.Status == domain.ConsultationStatusInProgress {
		return nil, domain.ErrAlreadyStarted
	}
	if !consultation.CanStart(now) {
		return nil, fmt.Errorf("%w: cannot start %s consultation at %s",
			domain.ErrInvalidTransition, consultation.Status, now.Format(time.RFC3339))
	}

	won, err := s.repo.Start(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("starting consultation: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !won {
		if updated.Status == domain.ConsultationStatusInProgress {
			return nil, domain.ErrAlreadyStarted
		}
		return nil, fmt.Errorf("%w: consultation is %s", domain.ErrInvalidTransition, updated.Status)
	}

	// The waiting room has served its purpose once the session is live.
	if err := s.waitingRoomRepo.Deactivate(ctx, id); err != nil {
		s.logger.Warn("failed to deactivate waiting room", zap.Int64("consultation_id", id), zap.Error(err))
	}

	s.publisher.Publish(domain.NewEvent(domain.EventConsultationStarted, id, updated))
	s.publishStatus(updated)
	s.postSystemMessage(ctx, id, "Consultation started")

	s.logger.Info("consultation started",
		zap.Int64("consultation_id", id),
		zap.Int64("doctor_id", identity.UserID))

	return updated, nil
}

func (s *ConsultationServiceImpl) End(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}

	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}

	if consultation.Status != domain.ConsultationStatusInProgress || consultation.ActualStart == nil {
		return nil, fmt.Errorf("%w: cannot end %s consultation", domain.ErrInvalidTransition, consultation.Status)
	}

	now := s.now()
	duration := int(now.Sub(*consultation.ActualStart) / time.Minute)
	if duration < 0 {
		duration = 0
	}

	done, err := s.repo.Complete(ctx, id, now, duration)
	if err != nil {
		return nil, fmt.Errorf("ending consultation: %w", err)
	}
	if !done {
		updated, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: consultation is %s", domain.ErrInvalidTransition, updated.Status)
	}

	if stillConnected := s.patientStillConnected(ctx, consultation); stillConnected {
		s.logger.Warn("consultation ended with patient still connected",
			zap.Int64("consultation_id", id),
			zap.Int64("patient_id", consultation.PatientID))
	}

	s.finishQueueAccounting(ctx, consultation.DoctorID, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.NewEvent(domain.EventConsultationEnded, id, updated))
	s.publishStatus(updated)
	s.postSystemMessage(ctx, id, "Consultation ended")

	s.logger.Info("consultation ended",
		zap.Int64("consultation_id", id),
		zap.Int("duration_minutes", duration))

	return updated, nil
}

func (s *ConsultationServiceImpl) Cancel(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error) {
	return s.exitEarly(ctx, identity, id, domain.ConsultationStatusCancelled)
}

func (s *ConsultationServiceImpl) MarkNoShow(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error) {
	return s.exitEarly(ctx, identity, id, domain.ConsultationStatusNoShow)
}

// exitEarly covers the side exits reachable only before the session goes
// live: cancelled and no_show.
func (s *ConsultationServiceImpl) exitEarly(ctx context.Context, identity domain.Identity, id int64, to domain.ConsultationStatus) (*domain.Consultation, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}

	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}

	from := []domain.ConsultationStatus{domain.ConsultationStatusScheduled, domain.ConsultationStatusWaiting}
	done, err := s.repo.TransitionStatus(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, fmt.Errorf("%w: cannot move %s consultation to %s", domain.ErrInvalidTransition, consultation.Status, to)
	}

	s.finishQueueAccounting(ctx, consultation.DoctorID, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishStatus(updated)
	return updated, nil
}

func (s *ConsultationServiceImpl) Reschedule(ctx context.Context, identity domain.Identity, id int64, dto domain.RescheduleDTO) (*domain.Consultation, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}

	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}

	done, err := s.repo.Reschedule(ctx, id, dto.ScheduledStart)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, fmt.Errorf("%w: cannot reschedule %s consultation", domain.ErrInvalidTransition, consultation.Status)
	}

	if err := s.waitingRoomRepo.Deactivate(ctx, id); err != nil {
		s.logger.Warn("failed to deactivate waiting room", zap.Int64("consultation_id", id), zap.Error(err))
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishStatus(updated)
	return updated, nil
}

func (s *ConsultationServiceImpl) UpdateDetails(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateConsultationDTO) (*domain.Consultation, error) {
	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}

	// Lifecycle fields go through the guarded transitions, never here.
	dto.Status = nil
	dto.ActualStart = nil
	dto.ActualEnd = nil
	dto.DurationMinutes = nil
	dto.ScheduledStart = nil

	if err := s.repo.Update(ctx, id, dto); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *ConsultationServiceImpl) Availability(ctx context.Context, identity domain.Identity, id int64) (*domain.ConsultationAvailability, error) {
	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(identity, consultation); err != nil {
		return nil, err
	}

	now := s.now()
	return &domain.ConsultationAvailability{
		Status:             consultation.Status,
		ScheduledStart:     consultation.ScheduledStart,
		CanStart:           consultation.CanStart(now),
		CanJoinWaitingRoom: consultation.CanJoinWaitingRoom(now),
		IsOverdue:          consultation.IsOverdue(now),
	}, nil
}

func (s *ConsultationServiceImpl) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if identity.Role != domain.UserRoleAdmin {
		return domain.ErrNotAuthorized
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *ConsultationServiceImpl) authorizeAccess(identity domain.Identity, c *domain.Consultation) error {
	switch identity.Role {
	case domain.UserRoleAdmin:
		return nil
	case domain.UserRoleDoctor:
		if c.DoctorID == identity.UserID {
			return nil
		}
	case domain.UserRolePatient:
		if c.PatientID == identity.UserID {
			return nil
		}
	case domain.UserRoleObserver, domain.UserRoleAssistant:
		// Observers and assistants are vetted at invitation time.
		return nil
	}
	return domain.ErrNotAuthorized
}

// postSystemMessage drops a lifecycle marker into the chat transcript. The
// transition itself has already committed, so a failure here only logs.
func (s *ConsultationServiceImpl) postSystemMessage(ctx context.Context, consultationID int64, content string) {
	if _, err := s.messages.SendSystem(ctx, consultationID, content); err != nil {
		s.logger.Warn("failed to post system message",
			zap.Int64("consultation_id", consultationID), zap.Error(err))
	}
}

func (s *ConsultationServiceImpl) publishStatus(c *domain.Consultation) {
	s.publisher.Publish(domain.NewEvent(domain.EventConsultationStatus, c.ID, map[string]interface{}{
		"status":     c.Status,
		"changed_at": s.now().UTC(),
	}))
}

// finishQueueAccounting closes the consultation's own waiting-room entry and
// moves the doctor's remaining queue up by one.
func (s *ConsultationServiceImpl) finishQueueAccounting(ctx context.Context, doctorID, consultationID int64) {
	if err := s.waitingRoomRepo.Deactivate(ctx, consultationID); err != nil {
		s.logger.Warn("failed to deactivate waiting room", zap.Int64("consultation_id", consultationID), zap.Error(err))
	}

	if err := s.waitingRoomRepo.DecrementPositionsForDoctor(ctx, doctorID); err != nil {
		s.logger.Warn("failed to shift waiting queue", zap.Int64("doctor_id", doctorID), zap.Error(err))
		return
	}

	// ETA follows position: one fewer visit ahead of everyone remaining.
	remaining, err := s.waitingRoomRepo.ListActiveByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Warn("failed to list waiting queue", zap.Int64("doctor_id", doctorID), zap.Error(err))
		return
	}
	for _, entry := range remaining {
		if !entry.IsPatientWaiting() {
			continue
		}
		eta := (entry.QueuePosition - 1) * s.cfg.Consultation.AverageVisitMinutes
		if eta < 0 {
			eta = 0
		}
		if err := s.waitingRoomRepo.UpdateEstimatedWait(ctx, entry.ID, eta); err != nil {
			s.logger.Warn("failed to update estimated wait", zap.Int64("waiting_room_id", entry.ID), zap.Error(err))
		}
	}
}

func (s *ConsultationServiceImpl) patientStillConnected(ctx context.Context, c *domain.Consultation) bool {
	participant, err := s.participantRepo.GetByConsultationAndUser(ctx, c.ID, c.PatientID)
	if err != nil {
		return false
	}
	return participant.IsCurrentlyJoined()
}
