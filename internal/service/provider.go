package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/internal/repository"
	"telemed/pkg/auth"
)

type ProviderServiceImpl struct {
	repo   repository.ProviderRepository
	logger *zap.Logger
}

func NewProviderService(repo repository.ProviderRepository, logger *zap.Logger) *ProviderServiceImpl {
	return &ProviderServiceImpl{repo: repo, logger: logger}
}

func (s *ProviderServiceImpl) List(ctx context.Context, identity domain.Identity) ([]domain.VideoProviderConfig, error) {
	if identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}
	return s.repo.List(ctx)
}

func (s *ProviderServiceImpl) Get(ctx context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error) {
	if !domain.ValidVideoProvider(provider) {
		return nil, fmt.Errorf("unknown video provider %q", provider)
	}
	return s.repo.GetByProvider(ctx, provider)
}

func (s *ProviderServiceImpl) Update(ctx context.Context, identity domain.Identity, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error) {
	if identity.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotAuthorized
	}
	if !domain.ValidVideoProvider(provider) {
		return nil, fmt.Errorf("unknown video provider %q", provider)
	}
	if err := validateProviderBounds(dto); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, provider, dto)
	if err != nil {
		return nil, err
	}

	s.logger.Info("video provider updated",
		zap.String("provider", string(provider)),
		zap.Bool("is_active", updated.IsActive))

	return updated, nil
}

func (s *ProviderServiceImpl) UpdateCredentials(ctx context.Context, identity domain.Identity, provider domain.VideoProvider, dto domain.UpdateProviderCredentialsDTO) error {
	if identity.Role != domain.UserRoleAdmin {
		return domain.ErrNotAuthorized
	}
	if !domain.ValidVideoProvider(provider) {
		return fmt.Errorf("unknown video provider %q", provider)
	}
	if provider == domain.VideoProviderWebRTC {
		return fmt.Errorf("the self-hosted provider takes no credentials")
	}
	if strings.TrimSpace(dto.APIKey) == "" || strings.TrimSpace(dto.APISecret) == "" {
		return fmt.Errorf("api key and secret must not be empty")
	}

	if err := s.repo.UpdateCredentials(ctx, provider, dto.APIKey, dto.APISecret); err != nil {
		return err
	}

	// Credentials themselves never reach the log.
	s.logger.Info("video provider credentials rotated", zap.String("provider", string(provider)))
	return nil
}

// SelectProvider picks the usable provider with the lowest priority order
// that satisfies every required capability. Ties break on provider name so
// selection is deterministic.
func (s *ProviderServiceImpl) SelectProvider(ctx context.Context, required []domain.ProviderCapability) (*domain.VideoProviderConfig, error) {
	configs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var best *domain.VideoProviderConfig
	for i := range configs {
		c := &configs[i]
		if !c.CanCreateMeeting() {
			continue
		}
		ok := true
		for _, cap := range required {
			if !c.HasCapability(cap) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if best == nil ||
			c.PriorityOrder < best.PriorityOrder ||
			(c.PriorityOrder == best.PriorityOrder && c.Provider < best.Provider) {
			best = c
		}
	}

	if best == nil {
		return nil, domain.ErrNoProviderAvailable
	}
	return best, nil
}

// CreateMeeting provisions a meeting room with the given provider. Provider
// APIs are fronted here so the rest of the system deals only in the Meeting
// value.
func (s *ProviderServiceImpl) CreateMeeting(ctx context.Context, config *domain.VideoProviderConfig) (*domain.Meeting, error) {
	if config == nil || !config.CanCreateMeeting() {
		return nil, domain.ErrNoProviderAvailable
	}

	meetingID := uuid.New().String()
	meeting := &domain.Meeting{
		Provider:  config.Provider,
		MeetingID: meetingID,
	}

	switch config.Provider {
	case domain.VideoProviderZoom:
		meeting.MeetingURL = fmt.Sprintf("https://zoom.us/j/%s", meetingID)
	case domain.VideoProviderGoogleMeet:
		meeting.MeetingURL = fmt.Sprintf("https://meet.google.com/%s", meetingID)
	case domain.VideoProviderTwilio:
		meeting.MeetingURL = fmt.Sprintf("https://video.twilio.com/rooms/%s", meetingID)
	case domain.VideoProviderWebRTC:
		meeting.MeetingURL = fmt.Sprintf("/rtc/rooms/%s", meetingID)
	default:
		return nil, fmt.Errorf("unknown video provider %q", config.Provider)
	}

	if config.RequiresAuthentication {
		password, err := auth.GenerateMeetingPassword(10)
		if err != nil {
			return nil, err
		}
		meeting.Password = password
	}

	s.logger.Info("meeting created",
		zap.String("provider", string(config.Provider)),
		zap.String("meeting_id", meetingID))

	return meeting, nil
}

func validateProviderBounds(dto domain.UpdateProviderDTO) error {
	if dto.MaxParticipants != nil && *dto.MaxParticipants < domain.MinMaxParticipants {
		return fmt.Errorf("max participants must be at least %d", domain.MinMaxParticipants)
	}
	if dto.MeetingTimeoutMinutes != nil && *dto.MeetingTimeoutMinutes < domain.MinMeetingTimeoutMinutes {
		return fmt.Errorf("meeting timeout must be at least %d minutes", domain.MinMeetingTimeoutMinutes)
	}
	if dto.RateLimitPerMinute != nil && *dto.RateLimitPerMinute < domain.MinRateLimitPerMinute {
		return fmt.Errorf("rate limit must be at least %d per minute", domain.MinRateLimitPerMinute)
	}
	return nil
}
