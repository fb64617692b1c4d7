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

type participantFixture struct {
	service       *ParticipantServiceImpl
	participants  *fakeParticipantRepo
	consultations *fakeConsultationRepo
	issues        *fakeIssueRepo
	publisher     *recordingPublisher
}

func newParticipantFixture(t *testing.T) *participantFixture {
	t.Helper()

	participants := newFakeParticipantRepo()
	consultations := newFakeConsultationRepo()
	issues := newFakeIssueRepo()
	publisher := &recordingPublisher{}

	issueService := NewIssueService(issues, participants, publisher, zap.NewNop())
	svc := NewParticipantService(participants, consultations, issueService, publisher, zap.NewNop())
	return &participantFixture{
		service:       svc,
		participants:  participants,
		consultations: consultations,
		issues:        issues,
		publisher:     publisher,
	}
}

func (f *participantFixture) seedConsultation(status domain.ConsultationStatus) *domain.Consultation {
	return f.consultations.put(&domain.Consultation{
		DoctorID:       1,
		PatientID:      2,
		Status:         status,
		ScheduledStart: time.Now(),
	})
}

func TestParticipantJoin(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	p, err := f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)
	assert.True(t, p.IsCurrentlyJoined())

	events := f.publisher.byType(domain.EventUserJoined)
	require.Len(t, events, 1)
	assert.Equal(t, c.ID, events[0].ConsultationID)
}

func TestParticipantRejoinResolvesConnectionIssues(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	connection, err := f.issues.Create(ctx, c.ID, 2, domain.ReportIssueDTO{
		Type:     domain.IssueTypeConnection,
		Severity: domain.IssueSeverityHigh,
	})
	require.NoError(t, err)
	audio, err := f.issues.Create(ctx, c.ID, 2, domain.ReportIssueDTO{
		Type:     domain.IssueTypeAudio,
		Severity: domain.IssueSeverityLow,
	})
	require.NoError(t, err)

	_, err = f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)

	resolved, err := f.issues.GetByID(ctx, connection.ID)
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.True(t, resolved.AutoResolved)
	assert.Nil(t, resolved.ResolvedBy)

	// Only connection issues close on reconnect.
	stillOpen, err := f.issues.GetByID(ctx, audio.ID)
	require.NoError(t, err)
	assert.False(t, stillOpen.Resolved)
}

func TestParticipantRejoinLeavesOtherReportersIssuesOpen(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	doctors, err := f.issues.Create(ctx, c.ID, 1, domain.ReportIssueDTO{
		Type:     domain.IssueTypeConnection,
		Severity: domain.IssueSeverityMedium,
	})
	require.NoError(t, err)

	_, err = f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)

	issue, err := f.issues.GetByID(ctx, doctors.ID)
	require.NoError(t, err)
	assert.False(t, issue.Resolved)
}

func TestParticipantJoinGuards(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	// Role must be a recognized participant role.
	_, err := f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRole("ghost"))
	assert.Error(t, err)

	// Claiming the doctor seat requires being that doctor.
	_, err = f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRoleDoctor)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// Claiming the patient seat requires being that patient.
	stranger := domain.Identity{UserID: 99, Role: domain.UserRolePatient}
	_, err = f.service.Join(ctx, stranger, c.ID, domain.UserRolePatient)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// Observers have no seat check.
	_, err = f.service.Join(ctx, domain.Identity{UserID: 50, Role: domain.UserRoleObserver}, c.ID, domain.UserRoleObserver)
	assert.NoError(t, err)

	done := f.seedConsultation(domain.ConsultationStatusCompleted)
	_, err = f.service.Join(ctx, patientIdentity(), done.ID, domain.UserRolePatient)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestParticipantRejoinClearsLeftAt(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	_, err := f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)
	require.NoError(t, f.service.Leave(ctx, patientIdentity(), c.ID))

	p, err := f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)
	assert.Nil(t, p.LeftAt)
	assert.True(t, p.IsCurrentlyJoined())
}

func TestParticipantLeaveIsIdempotent(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	// Leaving without ever joining does nothing.
	require.NoError(t, f.service.Leave(ctx, patientIdentity(), c.ID))
	assert.Empty(t, f.publisher.byType(domain.EventUserLeft))

	_, err := f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)

	require.NoError(t, f.service.Leave(ctx, patientIdentity(), c.ID))
	require.NoError(t, f.service.Leave(ctx, patientIdentity(), c.ID))

	// Only the first leave announces anything.
	assert.Len(t, f.publisher.byType(domain.EventUserLeft), 1)
}

func TestParticipantRoster(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	_, err := f.service.Join(ctx, doctorIdentity(), c.ID, domain.UserRoleDoctor)
	require.NoError(t, err)
	_, err = f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)
	require.NoError(t, f.service.Leave(ctx, patientIdentity(), c.ID))

	// The roster keeps departed participants.
	roster, err := f.service.Roster(ctx, doctorIdentity(), c.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)

	_, err = f.service.Roster(ctx, doctorIdentity(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantActiveParticipants(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	c := f.seedConsultation(domain.ConsultationStatusInProgress)

	_, err := f.service.Join(ctx, doctorIdentity(), c.ID, domain.UserRoleDoctor)
	require.NoError(t, err)
	_, err = f.service.Join(ctx, patientIdentity(), c.ID, domain.UserRolePatient)
	require.NoError(t, err)
	require.NoError(t, f.service.Leave(ctx, patientIdentity(), c.ID))

	seq, err := f.service.ActiveParticipants(ctx, c.ID)
	require.NoError(t, err)

	var ids []int64
	for p := range seq {
		ids = append(ids, p.UserID)
	}
	assert.Equal(t, []int64{1}, ids)

	// The sequence replays the same snapshot.
	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 1, count)

	// Early break must not panic or leak.
	for range seq {
		break
	}
}
