package domain

import "time"

type VideoProvider string

const (
	VideoProviderZoom       VideoProvider = "zoom"
	VideoProviderGoogleMeet VideoProvider = "google_meet"
	VideoProviderTwilio     VideoProvider = "twilio"
	// VideoProviderWebRTC is the self-hosted option and needs no credentials.
	VideoProviderWebRTC VideoProvider = "webrtc"
)

func ValidVideoProvider(p VideoProvider) bool {
	switch p {
	case VideoProviderZoom, VideoProviderGoogleMeet, VideoProviderTwilio, VideoProviderWebRTC:
		return true
	}
	return false
}

// VideoProviderConfig is the per-provider row (exactly one per provider).
// Mutated only by administrative action, read-heavy at runtime.
type VideoProviderConfig struct {
	ID                    int64             `json:"id" db:"id"`
	Provider              VideoProvider     `json:"provider" db:"provider"`
	IsActive              bool              `json:"is_active" db:"is_active"`
	APIKey                *string           `json:"-" db:"api_key"`
	APISecret             *string           `json:"-" db:"api_secret"`
	SupportsRecording     bool              `json:"supports_recording" db:"supports_recording"`
	AutoRecording         bool              `json:"auto_recording" db:"auto_recording"`
	SupportsWaitingRoom   bool              `json:"supports_waiting_room" db:"supports_waiting_room"`
	RequiresAuthentication bool             `json:"requires_authentication" db:"requires_authentication"`
	MaxParticipants       int               `json:"max_participants" db:"max_participants"`
	MeetingTimeoutMinutes int               `json:"meeting_timeout_minutes" db:"meeting_timeout_minutes"`
	RateLimitPerMinute    int               `json:"rate_limit_per_minute" db:"rate_limit_per_minute"`
	PriorityOrder         int               `json:"priority_order" db:"priority_order"`
	Settings              map[string]string `json:"settings,omitempty" db:"settings"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at" db:"updated_at"`
}

// IsConfigured reports whether the provider can authenticate against its
// backend. The self-hosted provider never needs credentials.
func (c *VideoProviderConfig) IsConfigured() bool {
	if c.Provider == VideoProviderWebRTC {
		return true
	}
	return c.APIKey != nil && *c.APIKey != "" && c.APISecret != nil && *c.APISecret != ""
}

// CanCreateMeeting reports whether a meeting may be created right now.
func (c *VideoProviderConfig) CanCreateMeeting() bool {
	return c.IsActive && c.IsConfigured()
}

func (c *VideoProviderConfig) HasRecordingCapability() bool {
	return c.CanCreateMeeting() && c.SupportsRecording
}

func (c *VideoProviderConfig) HasWaitingRoomCapability() bool {
	return c.CanCreateMeeting() && c.SupportsWaitingRoom
}

// ProviderCapability names a feature a caller may require when selecting a
// provider.
type ProviderCapability string

const (
	CapabilityRecording   ProviderCapability = "recording"
	CapabilityWaitingRoom ProviderCapability = "waiting_room"
)

// HasCapability reports whether the provider currently satisfies the named
// capability.
func (c *VideoProviderConfig) HasCapability(cap ProviderCapability) bool {
	switch cap {
	case CapabilityRecording:
		return c.HasRecordingCapability()
	case CapabilityWaitingRoom:
		return c.HasWaitingRoomCapability()
	}
	return false
}

// Administrative bounds for provider mutations.
const (
	MinMaxParticipants       = 2
	MinMeetingTimeoutMinutes = 15
	MinRateLimitPerMinute    = 1
)

type UpdateProviderDTO struct {
	IsActive              *bool   `json:"is_active,omitempty"`
	SupportsRecording     *bool   `json:"supports_recording,omitempty"`
	AutoRecording         *bool   `json:"auto_recording,omitempty"`
	SupportsWaitingRoom   *bool   `json:"supports_waiting_room,omitempty"`
	RequiresAuthentication *bool  `json:"requires_authentication,omitempty"`
	MaxParticipants       *int    `json:"max_participants,omitempty"`
	MeetingTimeoutMinutes *int    `json:"meeting_timeout_minutes,omitempty"`
	RateLimitPerMinute    *int    `json:"rate_limit_per_minute,omitempty"`
	PriorityOrder         *int    `json:"priority_order,omitempty"`
}

type UpdateProviderCredentialsDTO struct {
	APIKey    string `json:"api_key" binding:"required"`
	APISecret string `json:"api_secret" binding:"required"`
}

type SelectProviderDTO struct {
	RequiredCapabilities []ProviderCapability `json:"required_capabilities"`
}

// Meeting is the result of creating a meeting room with a provider.
type Meeting struct {
	Provider   VideoProvider `json:"provider"`
	MeetingID  string        `json:"meeting_id"`
	MeetingURL string        `json:"meeting_url"`
	Password   string        `json:"password,omitempty"`
}
