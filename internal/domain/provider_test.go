package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProviderIsConfigured(t *testing.T) {
	webrtc := VideoProviderConfig{Provider: VideoProviderWebRTC}
	assert.True(t, webrtc.IsConfigured(), "self-hosted provider needs no credentials")

	zoom := VideoProviderConfig{Provider: VideoProviderZoom}
	assert.False(t, zoom.IsConfigured())

	zoom.APIKey = strPtr("key")
	assert.False(t, zoom.IsConfigured(), "secret still missing")

	zoom.APISecret = strPtr("secret")
	assert.True(t, zoom.IsConfigured())

	zoom.APIKey = strPtr("")
	assert.False(t, zoom.IsConfigured(), "blank key does not count")
}

func TestProviderCanCreateMeeting(t *testing.T) {
	cfg := VideoProviderConfig{
		Provider:  VideoProviderZoom,
		APIKey:    strPtr("key"),
		APISecret: strPtr("secret"),
	}
	assert.False(t, cfg.CanCreateMeeting(), "inactive provider cannot create meetings")

	cfg.IsActive = true
	assert.True(t, cfg.CanCreateMeeting())
}

func TestProviderCapabilities(t *testing.T) {
	cfg := VideoProviderConfig{
		Provider:            VideoProviderWebRTC,
		IsActive:            true,
		SupportsRecording:   true,
		SupportsWaitingRoom: false,
	}

	assert.True(t, cfg.HasCapability(CapabilityRecording))
	assert.False(t, cfg.HasCapability(CapabilityWaitingRoom))
	assert.False(t, cfg.HasCapability(ProviderCapability("screen_share")))

	cfg.IsActive = false
	assert.False(t, cfg.HasCapability(CapabilityRecording), "capabilities require a usable provider")
}

func TestTechnicalIssuePriority(t *testing.T) {
	high := TechnicalIssue{Severity: IssueSeverityHigh}
	assert.True(t, high.IsHighPriority())
	assert.True(t, high.NeedsImmediateAttention())

	high.Resolved = true
	assert.False(t, high.NeedsImmediateAttention())

	low := TechnicalIssue{Severity: IssueSeverityLow}
	assert.False(t, low.IsHighPriority())
}
