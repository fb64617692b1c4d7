package domain

import "time"

type IssueType string

const (
	IssueTypeAudio       IssueType = "audio"
	IssueTypeVideo       IssueType = "video"
	IssueTypeConnection  IssueType = "connection"
	IssueTypeScreenShare IssueType = "screen_share"
	IssueTypeRecording   IssueType = "recording"
	IssueTypeOther       IssueType = "other"
)

type IssueSeverity string

const (
	IssueSeverityLow      IssueSeverity = "low"
	IssueSeverityMedium   IssueSeverity = "medium"
	IssueSeverityHigh     IssueSeverity = "high"
	IssueSeverityCritical IssueSeverity = "critical"
)

// TechnicalIssue is a reported problem scoped to a consultation and a
// reporting user.
type TechnicalIssue struct {
	ID              int64             `json:"id" db:"id"`
	ConsultationID  int64             `json:"consultation_id" db:"consultation_id"`
	ReporterID      int64             `json:"reporter_id" db:"reporter_id"`
	Type            IssueType         `json:"issue_type" db:"issue_type"`
	Severity        IssueSeverity     `json:"severity" db:"severity"`
	Description     string            `json:"description" db:"description"`
	DeviceInfo      map[string]string `json:"device_info,omitempty" db:"device_info"`
	BrowserInfo     map[string]string `json:"browser_info,omitempty" db:"browser_info"`
	NetworkInfo     map[string]string `json:"network_info,omitempty" db:"network_info"`
	Resolved        bool              `json:"resolved" db:"resolved"`
	ResolvedAt      *time.Time        `json:"resolved_at,omitempty" db:"resolved_at"`
	ResolvedBy      *int64            `json:"resolved_by,omitempty" db:"resolved_by"`
	AutoResolved    bool              `json:"auto_resolved" db:"auto_resolved"`
	ResolutionNotes *string           `json:"resolution_notes,omitempty" db:"resolution_notes"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// IsHighPriority reports whether the severity demands staff attention.
func (i *TechnicalIssue) IsHighPriority() bool {
	return i.Severity == IssueSeverityHigh || i.Severity == IssueSeverityCritical
}

// NeedsImmediateAttention drives staff-facing alerting.
func (i *TechnicalIssue) NeedsImmediateAttention() bool {
	return i.IsHighPriority() && !i.Resolved
}

// ResolutionTimeMinutes is nil while the issue is open.
func (i *TechnicalIssue) ResolutionTimeMinutes() *int {
	if !i.Resolved || i.ResolvedAt == nil {
		return nil
	}
	minutes := int(i.ResolvedAt.Sub(i.CreatedAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

// AutoResolutionNote is recorded when the system observes the underlying
// condition has cleared.
const AutoResolutionNote = "automatically resolved: condition cleared"

type ReportIssueDTO struct {
	Type        IssueType         `json:"issue_type" binding:"required,oneof=audio video connection screen_share recording other"`
	Severity    IssueSeverity     `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	Description string            `json:"description" binding:"required"`
	DeviceInfo  map[string]string `json:"device_info,omitempty"`
	BrowserInfo map[string]string `json:"browser_info,omitempty"`
	NetworkInfo map[string]string `json:"network_info,omitempty"`
}

type ResolveIssueDTO struct {
	Notes *string `json:"notes,omitempty"`
}
