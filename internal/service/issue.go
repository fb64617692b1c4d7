package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/internal/repository"
)

type IssueServiceImpl struct {
	repo            repository.IssueRepository
	participantRepo repository.ParticipantRepository
	publisher       EventPublisher
	logger          *zap.Logger
	now             func() time.Time
}

func NewIssueService(
	repo repository.IssueRepository,
	participantRepo repository.ParticipantRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *IssueServiceImpl {
	return &IssueServiceImpl{
		repo:            repo,
		participantRepo: participantRepo,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *IssueServiceImpl) Report(ctx context.Context, identity domain.Identity, consultationID int64, dto domain.ReportIssueDTO) (*domain.TechnicalIssue, error) {
	if dto.Severity == "" {
		dto.Severity = domain.IssueSeverityMedium
	}

	issue, err := s.repo.Create(ctx, consultationID, identity.UserID, dto)
	if err != nil {
		return nil, fmt.Errorf("recording technical issue: %w", err)
	}

	// Connection problems also bump the reporter's per-session counter so
	// quality trends show up on the participant record.
	if dto.Type == domain.IssueTypeConnection {
		if err := s.participantRepo.IncrementConnectionIssues(ctx, consultationID, identity.UserID); err != nil &&
			!errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("failed to bump connection issue counter",
				zap.Int64("consultation_id", consultationID),
				zap.Int64("user_id", identity.UserID),
				zap.Error(err))
		}
	}

	s.publisher.Publish(domain.NewEvent(domain.EventTechnicalIssueReported, consultationID, map[string]interface{}{
		"issue_id":    issue.ID,
		"issue_type":  issue.Type,
		"severity":    issue.Severity,
		"reporter_id": issue.ReporterID,
	}))

	if issue.NeedsImmediateAttention() {
		s.logger.Warn("high-priority technical issue reported",
			zap.Int64("consultation_id", consultationID),
			zap.Int64("issue_id", issue.ID),
			zap.String("issue_type", string(issue.Type)),
			zap.String("severity", string(issue.Severity)))
	} else {
		s.logger.Info("technical issue reported",
			zap.Int64("consultation_id", consultationID),
			zap.Int64("issue_id", issue.ID),
			zap.String("issue_type", string(issue.Type)))
	}

	return issue, nil
}

func (s *IssueServiceImpl) Resolve(ctx context.Context, identity domain.Identity, issueID int64, dto domain.ResolveIssueDTO) (*domain.TechnicalIssue, error) {
	if identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin && identity.Role != domain.UserRoleAssistant {
		return nil, domain.ErrNotAuthorized
	}

	issue, err := s.repo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.Resolved {
		return issue, nil
	}

	resolvedBy := identity.UserID
	resolved, err := s.repo.Resolve(ctx, issueID, &resolvedBy, false, dto.Notes, s.now())
	if err != nil {
		return nil, fmt.Errorf("resolving issue: %w", err)
	}

	s.logger.Info("technical issue resolved",
		zap.Int64("issue_id", issueID),
		zap.Int64("resolved_by", identity.UserID))

	return resolved, nil
}

// AutoResolve closes an issue the platform has observed to be fixed, for
// example a reconnect after a connection report.
func (s *IssueServiceImpl) AutoResolve(ctx context.Context, issueID int64) (*domain.TechnicalIssue, error) {
	issue, err := s.repo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.Resolved {
		return issue, nil
	}

	notes := domain.AutoResolutionNote
	resolved, err := s.repo.Resolve(ctx, issueID, nil, true, &notes, s.now())
	if err != nil {
		return nil, fmt.Errorf("auto-resolving issue: %w", err)
	}

	s.logger.Info("technical issue auto-resolved", zap.Int64("issue_id", issueID))
	return resolved, nil
}

// AutoResolveConnectionIssues closes every open connection issue the user
// reported for the consultation. A rejoin means the connection recovered.
func (s *IssueServiceImpl) AutoResolveConnectionIssues(ctx context.Context, consultationID, reporterID int64) error {
	open, err := s.repo.ListByConsultation(ctx, consultationID, true)
	if err != nil {
		return err
	}

	for _, issue := range open {
		if issue.Type != domain.IssueTypeConnection || issue.ReporterID != reporterID {
			continue
		}
		if _, err := s.AutoResolve(ctx, issue.ID); err != nil {
			s.logger.Warn("failed to auto-resolve connection issue",
				zap.Int64("issue_id", issue.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *IssueServiceImpl) ListByConsultation(ctx context.Context, identity domain.Identity, consultationID int64, openOnly bool) ([]domain.TechnicalIssue, error) {
	if identity.Role == domain.UserRolePatient {
		if _, err := s.participantRepo.GetByConsultationAndUser(ctx, consultationID, identity.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotAuthorized
			}
			return nil, err
		}
	}
	return s.repo.ListByConsultation(ctx, consultationID, openOnly)
}
