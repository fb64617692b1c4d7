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

type WaitingRoomServiceImpl struct {
	repo             repository.WaitingRoomRepository
	consultationRepo repository.ConsultationRepository
	publisher        EventPublisher
	cfg              *config.Config
	logger           *zap.Logger
	now              func() time.Time
}

func NewWaitingRoomService(
	repo repository.WaitingRoomRepository,
	consultationRepo repository.ConsultationRepository,
	publisher EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *WaitingRoomServiceImpl {
	return &WaitingRoomServiceImpl{
		repo:             repo,
		consultationRepo: consultationRepo,
		publisher:        publisher,
		cfg:              cfg,
		logger:           logger,
		now:              time.Now,
	}
}

// Join puts the consultation's patient into the waiting queue. The queue
// position counts earlier active entries across all of the doctor's
// consultations; the wait estimate is one average visit per patient ahead.
func (s *WaitingRoomServiceImpl) Join(ctx context.Context, identity domain.Identity, consultationID int64) (*domain.WaitingRoom, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	if identity.Role == domain.UserRolePatient && consultation.PatientID != identity.UserID {
		return nil, domain.ErrNotAuthorized
	}

	now := s.now()
	if !consultation.CanJoinWaitingRoom(now) {
		return nil, fmt.Errorf("%w: consultation is %s, scheduled for %s",
			domain.ErrOutsideJoinWindow, consultation.Status, consultation.ScheduledStart.Format(time.RFC3339))
	}

	ahead, err := s.repo.CountWaitingAhead(ctx, consultation.DoctorID, now)
	if err != nil {
		return nil, fmt.Errorf("computing queue position: %w", err)
	}
	position := ahead + 1
	estimate := ahead * s.cfg.Consultation.AverageVisitMinutes

	room, err := s.repo.CreateOrReactivate(ctx, consultationID, now, position, estimate)
	if err != nil {
		return nil, fmt.Errorf("joining waiting room: %w", err)
	}

	if consultation.Status == domain.ConsultationStatusScheduled {
		from := []domain.ConsultationStatus{domain.ConsultationStatusScheduled}
		moved, err := s.consultationRepo.TransitionStatus(ctx, consultationID, from, domain.ConsultationStatusWaiting)
		if err != nil {
			s.logger.Warn("failed to mark consultation waiting",
				zap.Int64("consultation_id", consultationID), zap.Error(err))
		}
		if moved {
			s.publisher.Publish(domain.NewEvent(domain.EventConsultationStatus, consultationID, map[string]interface{}{
				"status":     domain.ConsultationStatusWaiting,
				"changed_at": now.UTC(),
			}))
		}
	}

	s.publisher.Publish(domain.NewEvent(domain.EventPatientWaiting, consultationID, map[string]interface{}{
		"patient_id":             consultation.PatientID,
		"queue_position":         room.QueuePosition,
		"estimated_wait_minutes": room.EstimatedWaitMinutes,
	}))

	s.logger.Info("patient joined waiting room",
		zap.Int64("consultation_id", consultationID),
		zap.Int("queue_position", room.QueuePosition),
		zap.Int("estimated_wait_minutes", room.EstimatedWaitMinutes))

	return room, nil
}

// NotifyDoctor flags the entry so the doctor's dashboard surfaces it. The
// flag is one-way until the entry deactivates.
func (s *WaitingRoomServiceImpl) NotifyDoctor(ctx context.Context, identity domain.Identity, consultationID int64) (*domain.WaitingRoom, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if identity.Role == domain.UserRolePatient && consultation.PatientID != identity.UserID {
		return nil, domain.ErrNotAuthorized
	}

	room, err := s.repo.GetByConsultationID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, domain.ErrNotFound
	}
	if room.DoctorNotifiedAt != nil {
		return room, nil
	}

	return s.repo.NotifyDoctor(ctx, room.ID, s.now())
}

func (s *WaitingRoomServiceImpl) Get(ctx context.Context, identity domain.Identity, consultationID int64) (*domain.WaitingRoomStatus, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if identity.Role == domain.UserRolePatient && consultation.PatientID != identity.UserID {
		return nil, domain.ErrNotAuthorized
	}
	if identity.Role == domain.UserRoleDoctor && consultation.DoctorID != identity.UserID {
		return nil, domain.ErrNotAuthorized
	}

	room, err := s.repo.GetByConsultationID(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	// A patient polling their own status counts as presence; it keeps the
	// entry from going stale.
	if identity.Role == domain.UserRolePatient && room.IsActive {
		now := s.now()
		if err := s.repo.TouchActivity(ctx, room.ID, now); err != nil {
			s.logger.Warn("failed to touch waiting room activity",
				zap.Int64("waiting_room_id", room.ID), zap.Error(err))
		} else {
			room.LastActivity = now
		}
	}

	return s.status(room), nil
}

func (s *WaitingRoomServiceImpl) UpdateEstimatedWait(ctx context.Context, identity domain.Identity, consultationID int64, minutes int) error {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return domain.ErrNotAuthorized
	}
	if minutes < 0 {
		minutes = 0
	}

	room, err := s.repo.GetByConsultationID(ctx, consultationID)
	if err != nil {
		return err
	}
	return s.repo.UpdateEstimatedWait(ctx, room.ID, minutes)
}

func (s *WaitingRoomServiceImpl) UpdateQueuePosition(ctx context.Context, identity domain.Identity, consultationID int64, position int) error {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return domain.ErrNotAuthorized
	}
	if position < 1 {
		position = 1
	}

	room, err := s.repo.GetByConsultationID(ctx, consultationID)
	if err != nil {
		return err
	}
	return s.repo.UpdateQueuePosition(ctx, room.ID, position)
}

func (s *WaitingRoomServiceImpl) ListActiveByDoctor(ctx context.Context, identity domain.Identity) ([]domain.WaitingRoomStatus, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}

	rooms, err := s.repo.ListActiveByDoctor(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	statuses := make([]domain.WaitingRoomStatus, 0, len(rooms))
	for i := range rooms {
		statuses = append(statuses, *s.status(&rooms[i]))
	}
	return statuses, nil
}

func (s *WaitingRoomServiceImpl) status(room *domain.WaitingRoom) *domain.WaitingRoomStatus {
	now := s.now()
	return &domain.WaitingRoomStatus{
		WaitingRoom:       *room,
		ActualWaitMinutes: room.ActualWaitTime(now),
		Stale:             room.IsStale(now, s.cfg.Consultation.StaleWaitThreshold),
		PatientWaiting:    room.IsPatientWaiting(),
	}
}
