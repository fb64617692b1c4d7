package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

type issueFixture struct {
	service      *IssueServiceImpl
	issues       *fakeIssueRepo
	participants *fakeParticipantRepo
	publisher    *recordingPublisher
}

func newIssueFixture(t *testing.T) *issueFixture {
	t.Helper()

	issues := newFakeIssueRepo()
	participants := newFakeParticipantRepo()
	publisher := &recordingPublisher{}

	svc := NewIssueService(issues, participants, publisher, zap.NewNop())
	return &issueFixture{service: svc, issues: issues, participants: participants, publisher: publisher}
}

func TestIssueReportDefaultsSeverity(t *testing.T) {
	f := newIssueFixture(t)

	issue, err := f.service.Report(context.Background(), patientIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeAudio,
		Description: "echo on my end",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IssueSeverityMedium, issue.Severity)
	assert.Equal(t, int64(2), issue.ReporterID)

	events := f.publisher.byType(domain.EventTechnicalIssueReported)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].ConsultationID)
}

func TestIssueReportBumpsConnectionCounter(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	_, err := f.participants.Join(ctx, 1, 2, domain.UserRolePatient, time.Now())
	require.NoError(t, err)

	_, err = f.service.Report(ctx, patientIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeConnection,
		Description: "keeps dropping",
	})
	require.NoError(t, err)

	p, err := f.participants.GetByConsultationAndUser(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ConnectionIssues)

	// Audio issues do not touch the counter.
	_, err = f.service.Report(ctx, patientIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeAudio,
		Description: "choppy",
	})
	require.NoError(t, err)

	p, err = f.participants.GetByConsultationAndUser(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ConnectionIssues)
}

func TestIssueReportConnectionWithoutParticipant(t *testing.T) {
	f := newIssueFixture(t)

	// Reporter never joined; the counter bump is skipped, not an error.
	_, err := f.service.Report(context.Background(), patientIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeConnection,
		Description: "cannot connect at all",
	})
	assert.NoError(t, err)
}

func TestIssueResolve(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	issue, err := f.service.Report(ctx, patientIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeConnection,
		Severity:    domain.IssueSeverityCritical,
		Description: "frozen frame",
	})
	require.NoError(t, err)
	assert.True(t, issue.NeedsImmediateAttention())
	assert.Nil(t, issue.ResolutionTimeMinutes())

	notes := "asked patient to rejoin"
	resolved, err := f.service.Resolve(ctx, doctorIdentity(), issue.ID, domain.ResolveIssueDTO{Notes: &notes})
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, int64(1), *resolved.ResolvedBy)
	assert.False(t, resolved.AutoResolved)
	assert.False(t, resolved.NeedsImmediateAttention())
	require.NotNil(t, resolved.ResolutionTimeMinutes())

	// Resolving again returns the already-resolved issue untouched.
	again, err := f.service.Resolve(ctx, doctorIdentity(), issue.ID, domain.ResolveIssueDTO{})
	require.NoError(t, err)
	assert.Equal(t, resolved.ResolvedAt.Unix(), again.ResolvedAt.Unix())

	_, err = f.service.Resolve(ctx, patientIdentity(), issue.ID, domain.ResolveIssueDTO{})
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestIssueAutoResolve(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	issue, err := f.service.Report(ctx, patientIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeConnection,
		Description: "dropped",
	})
	require.NoError(t, err)

	resolved, err := f.service.AutoResolve(ctx, issue.ID)
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.True(t, resolved.AutoResolved)
	assert.Nil(t, resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolutionNotes)
	assert.Equal(t, domain.AutoResolutionNote, *resolved.ResolutionNotes)
}

func TestIssueListByConsultation(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	first, err := f.service.Report(ctx, doctorIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeAudio,
		Description: "hum",
	})
	require.NoError(t, err)
	_, err = f.service.Report(ctx, doctorIdentity(), 1, domain.ReportIssueDTO{
		Type:        domain.IssueTypeVideo,
		Description: "blur",
	})
	require.NoError(t, err)

	_, err = f.service.AutoResolve(ctx, first.ID)
	require.NoError(t, err)

	all, err := f.service.ListByConsultation(ctx, doctorIdentity(), 1, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	open, err := f.service.ListByConsultation(ctx, doctorIdentity(), 1, true)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	// Patients must be participants to read the issue list.
	_, err = f.service.ListByConsultation(ctx, patientIdentity(), 1, false)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = f.participants.Join(ctx, 1, 2, domain.UserRolePatient, time.Now())
	require.NoError(t, err)
	listed, err := f.service.ListByConsultation(ctx, patientIdentity(), 1, false)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
