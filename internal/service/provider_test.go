package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

func adminIdentity() domain.Identity {
	return domain.Identity{UserID: 100, Role: domain.UserRoleAdmin}
}

func providerConfig(p domain.VideoProvider, priority int, mutate ...func(*domain.VideoProviderConfig)) domain.VideoProviderConfig {
	key, secret := "key", "secret"
	c := domain.VideoProviderConfig{
		Provider:      p,
		IsActive:      true,
		APIKey:        &key,
		APISecret:     &secret,
		PriorityOrder: priority,
	}
	for _, m := range mutate {
		m(&c)
	}
	return c
}

func TestSelectProviderPicksLowestPriority(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(
		providerConfig(domain.VideoProviderZoom, 20),
		providerConfig(domain.VideoProviderWebRTC, 10),
		providerConfig(domain.VideoProviderTwilio, 30),
	), zap.NewNop())

	best, err := svc.SelectProvider(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoProviderWebRTC, best.Provider)
}

func TestSelectProviderSkipsUnusable(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(
		providerConfig(domain.VideoProviderWebRTC, 10, func(c *domain.VideoProviderConfig) {
			c.IsActive = false
		}),
		providerConfig(domain.VideoProviderZoom, 20, func(c *domain.VideoProviderConfig) {
			c.APIKey = nil // active but not configured
		}),
		providerConfig(domain.VideoProviderTwilio, 30),
	), zap.NewNop())

	best, err := svc.SelectProvider(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoProviderTwilio, best.Provider)
}

func TestSelectProviderRequiredCapabilities(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(
		providerConfig(domain.VideoProviderWebRTC, 10),
		providerConfig(domain.VideoProviderZoom, 20, func(c *domain.VideoProviderConfig) {
			c.SupportsRecording = true
		}),
	), zap.NewNop())

	best, err := svc.SelectProvider(context.Background(), []domain.ProviderCapability{domain.CapabilityRecording})
	require.NoError(t, err)
	assert.Equal(t, domain.VideoProviderZoom, best.Provider)

	_, err = svc.SelectProvider(context.Background(), []domain.ProviderCapability{
		domain.CapabilityRecording, domain.CapabilityWaitingRoom,
	})
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)
}

func TestSelectProviderTieBreaksOnName(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(
		providerConfig(domain.VideoProviderZoom, 10),
		providerConfig(domain.VideoProviderGoogleMeet, 10),
	), zap.NewNop())

	best, err := svc.SelectProvider(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoProviderGoogleMeet, best.Provider)
}

func TestSelectProviderNoneAvailable(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(), zap.NewNop())

	_, err := svc.SelectProvider(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)
}

func TestCreateMeetingURLs(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		provider domain.VideoProvider
		prefix   string
	}{
		{domain.VideoProviderZoom, "https://zoom.us/j/"},
		{domain.VideoProviderGoogleMeet, "https://meet.google.com/"},
		{domain.VideoProviderTwilio, "https://video.twilio.com/rooms/"},
		{domain.VideoProviderWebRTC, "/rtc/rooms/"},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			cfg := providerConfig(tt.provider, 10)
			meeting, err := svc.CreateMeeting(ctx, &cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, meeting.Provider)
			assert.True(t, strings.HasPrefix(meeting.MeetingURL, tt.prefix))
			assert.True(t, strings.HasSuffix(meeting.MeetingURL, meeting.MeetingID))
			assert.Empty(t, meeting.Password)
		})
	}
}

func TestCreateMeetingPassword(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(), zap.NewNop())

	cfg := providerConfig(domain.VideoProviderZoom, 10, func(c *domain.VideoProviderConfig) {
		c.RequiresAuthentication = true
	})
	meeting, err := svc.CreateMeeting(context.Background(), &cfg)
	require.NoError(t, err)
	assert.Len(t, meeting.Password, 10)
}

func TestCreateMeetingRejectsUnusableConfig(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(), zap.NewNop())

	cfg := providerConfig(domain.VideoProviderZoom, 10, func(c *domain.VideoProviderConfig) {
		c.IsActive = false
	})
	_, err := svc.CreateMeeting(context.Background(), &cfg)
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)

	_, err = svc.CreateMeeting(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)
}

func TestProviderUpdateValidatesBounds(t *testing.T) {
	svc := NewProviderService(newFakeProviderRepo(
		providerConfig(domain.VideoProviderZoom, 10),
	), zap.NewNop())
	ctx := context.Background()

	one := 1
	_, err := svc.Update(ctx, adminIdentity(), domain.VideoProviderZoom, domain.UpdateProviderDTO{MaxParticipants: &one})
	assert.Error(t, err)

	five := 5
	_, err = svc.Update(ctx, adminIdentity(), domain.VideoProviderZoom, domain.UpdateProviderDTO{MeetingTimeoutMinutes: &five})
	assert.Error(t, err)

	ten := 10
	updated, err := svc.Update(ctx, adminIdentity(), domain.VideoProviderZoom, domain.UpdateProviderDTO{MaxParticipants: &ten})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.MaxParticipants)

	_, err = svc.Update(ctx, doctorIdentity(), domain.VideoProviderZoom, domain.UpdateProviderDTO{})
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestProviderUpdateCredentials(t *testing.T) {
	repo := newFakeProviderRepo(
		providerConfig(domain.VideoProviderZoom, 10),
		providerConfig(domain.VideoProviderWebRTC, 20),
	)
	svc := NewProviderService(repo, zap.NewNop())
	ctx := context.Background()

	err := svc.UpdateCredentials(ctx, adminIdentity(), domain.VideoProviderZoom, domain.UpdateProviderCredentialsDTO{
		APIKey: "new-key", APISecret: "new-secret",
	})
	require.NoError(t, err)

	cfg, err := repo.GetByProvider(ctx, domain.VideoProviderZoom)
	require.NoError(t, err)
	assert.Equal(t, "new-key", *cfg.APIKey)

	// The self-hosted provider has nothing to rotate.
	err = svc.UpdateCredentials(ctx, adminIdentity(), domain.VideoProviderWebRTC, domain.UpdateProviderCredentialsDTO{
		APIKey: "k", APISecret: "s",
	})
	assert.Error(t, err)

	err = svc.UpdateCredentials(ctx, adminIdentity(), domain.VideoProviderZoom, domain.UpdateProviderCredentialsDTO{
		APIKey: "  ", APISecret: "s",
	})
	assert.Error(t, err)

	err = svc.UpdateCredentials(ctx, doctorIdentity(), domain.VideoProviderZoom, domain.UpdateProviderCredentialsDTO{
		APIKey: "k", APISecret: "s",
	})
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}
