package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/internal/repository"
)

type ParticipantServiceImpl struct {
	repo             repository.ParticipantRepository
	consultationRepo repository.ConsultationRepository
	issues           IssueService
	publisher        EventPublisher
	logger           *zap.Logger
	now              func() time.Time
}

func NewParticipantService(
	repo repository.ParticipantRepository,
	consultationRepo repository.ConsultationRepository,
	issues IssueService,
	publisher EventPublisher,
	logger *zap.Logger,
) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{
		repo:             repo,
		consultationRepo: consultationRepo,
		issues:           issues,
		publisher:        publisher,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *ParticipantServiceImpl) Join(ctx context.Context, identity domain.Identity, consultationID int64, role domain.UserRole) (*domain.ConsultationParticipant, error) {
	if !domain.ValidParticipantRole(role) {
		return nil, fmt.Errorf("invalid participant role %q", role)
	}

	consultation, err := s.consultationRepo.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: consultation is %s", domain.ErrInvalidTransition, consultation.Status)
	}

	switch role {
	case domain.UserRoleDoctor:
		if consultation.DoctorID != identity.UserID && identity.Role != domain.UserRoleAdmin {
			return nil, domain.ErrNotAuthorized
		}
	case domain.UserRolePatient:
		if consultation.PatientID != identity.UserID && identity.Role != domain.UserRoleAdmin {
			return nil, domain.ErrNotAuthorized
		}
	}

	participant, err := s.repo.Join(ctx, consultationID, identity.UserID, role, s.now())
	if err != nil {
		return nil, fmt.Errorf("joining consultation: %w", err)
	}

	s.publisher.Publish(domain.NewEvent(domain.EventUserJoined, consultationID, map[string]interface{}{
		"user_id": participant.UserID,
		"role":    participant.Role,
	}))

	// Being back in the session closes out any connection problems the user
	// reported earlier.
	if err := s.issues.AutoResolveConnectionIssues(ctx, consultationID, identity.UserID); err != nil {
		s.logger.Warn("failed to auto-resolve connection issues",
			zap.Int64("consultation_id", consultationID),
			zap.Int64("user_id", identity.UserID),
			zap.Error(err))
	}

	s.logger.Info("participant joined",
		zap.Int64("consultation_id", consultationID),
		zap.Int64("user_id", identity.UserID),
		zap.String("role", string(role)))

	return participant, nil
}

func (s *ParticipantServiceImpl) Leave(ctx context.Context, identity domain.Identity, consultationID int64) error {
	participant, err := s.repo.GetByConsultationAndUser(ctx, consultationID, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if !participant.IsCurrentlyJoined() {
		return nil
	}

	left, err := s.repo.Leave(ctx, consultationID, identity.UserID, s.now())
	if err != nil {
		return fmt.Errorf("leaving consultation: %w", err)
	}
	if !left {
		return nil
	}

	s.publisher.Publish(domain.NewEvent(domain.EventUserLeft, consultationID, map[string]interface{}{
		"user_id": participant.UserID,
		"role":    participant.Role,
	}))

	// A doctor dropping out of a live session usually means trouble on
	// their side; leave a trace for support.
	if participant.Role == domain.UserRoleDoctor {
		if consultation, err := s.consultationRepo.GetByID(ctx, consultationID); err == nil &&
			consultation.Status == domain.ConsultationStatusInProgress {
			s.logger.Warn("doctor left a consultation in progress",
				zap.Int64("consultation_id", consultationID),
				zap.Int64("doctor_id", identity.UserID))
		}
	}

	return nil
}

func (s *ParticipantServiceImpl) Roster(ctx context.Context, identity domain.Identity, consultationID int64) ([]domain.ConsultationParticipant, error) {
	if _, err := s.consultationRepo.GetByID(ctx, consultationID); err != nil {
		return nil, err
	}
	return s.repo.ListByConsultation(ctx, consultationID)
}

// ActiveParticipants yields the currently-joined participants from a single
// snapshot read. Ranging over the sequence again replays the same snapshot.
func (s *ParticipantServiceImpl) ActiveParticipants(ctx context.Context, consultationID int64) (iter.Seq[domain.ConsultationParticipant], error) {
	participants, err := s.repo.ListByConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	return func(yield func(domain.ConsultationParticipant) bool) {
		for _, p := range participants {
			if !p.IsCurrentlyJoined() {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}
