package repository

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemed/internal/domain"
)

func newConsultationMock(t *testing.T) (pgxmock.PgxPoolIface, *ConsultationRepositoryImpl) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewConsultationRepository(mock)
}

func TestConsultationStartWinsRace(t *testing.T) {
	mock, repo := newConsultationMock(t)
	now := time.Now()

	mock.ExpectExec("UPDATE consultations").
		WithArgs(domain.ConsultationStatusInProgress, now, int64(7),
			domain.ConsultationStatusScheduled, domain.ConsultationStatusWaiting).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	started, err := repo.Start(context.Background(), 7, now)
	require.NoError(t, err)
	assert.True(t, started)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationStartLosesRace(t *testing.T) {
	mock, repo := newConsultationMock(t)
	now := time.Now()

	// Another caller already moved the row out of scheduled/waiting, so the
	// guarded update touches nothing.
	mock.ExpectExec("UPDATE consultations").
		WithArgs(domain.ConsultationStatusInProgress, now, int64(7),
			domain.ConsultationStatusScheduled, domain.ConsultationStatusWaiting).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	started, err := repo.Start(context.Background(), 7, now)
	require.NoError(t, err)
	assert.False(t, started)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationComplete(t *testing.T) {
	mock, repo := newConsultationMock(t)
	now := time.Now()

	mock.ExpectExec("UPDATE consultations").
		WithArgs(domain.ConsultationStatusCompleted, now, 25, int64(7), domain.ConsultationStatusInProgress).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	completed, err := repo.Complete(context.Background(), 7, now, 25)
	require.NoError(t, err)
	assert.True(t, completed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationTransitionStatus(t *testing.T) {
	mock, repo := newConsultationMock(t)

	mock.ExpectExec("UPDATE consultations").
		WithArgs(domain.ConsultationStatusCancelled, pgxmock.AnyArg(), int64(7),
			domain.ConsultationStatusScheduled, domain.ConsultationStatusWaiting).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	from := []domain.ConsultationStatus{domain.ConsultationStatusScheduled, domain.ConsultationStatusWaiting}
	moved, err := repo.TransitionStatus(context.Background(), 7, from, domain.ConsultationStatusCancelled)
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationGetByIDNotFound(t *testing.T) {
	mock, repo := newConsultationMock(t)

	mock.ExpectQuery("SELECT (.+) FROM consultations").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationSoftDeleteMissing(t *testing.T) {
	mock, repo := newConsultationMock(t)

	mock.ExpectExec("UPDATE consultations SET deleted_at").
		WithArgs(pgxmock.AnyArg(), int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
