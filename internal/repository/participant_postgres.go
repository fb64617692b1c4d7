package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"telemed/internal/domain"
)

const participantColumns = `id, consultation_id, user_id, role, joined_at, left_at, connection_issues, created_at, updated_at`

type ParticipantRepositoryImpl struct {
	db DB
}

func NewParticipantRepository(db DB) *ParticipantRepositoryImpl {
	return &ParticipantRepositoryImpl{db: db}
}

func scanParticipant(row pgx.Row) (*domain.ConsultationParticipant, error) {
	var p domain.ConsultationParticipant
	err := row.Scan(
		&p.ID,
		&p.ConsultationID,
		&p.UserID,
		&p.Role,
		&p.JoinedAt,
		&p.LeftAt,
		&p.ConnectionIssues,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepositoryImpl) Join(ctx context.Context, consultationID, userID int64, role domain.UserRole, now time.Time) (*domain.ConsultationParticipant, error) {
	// Unique on (consultation_id, user_id): a re-join refreshes joined_at
	// and clears left_at instead of creating a duplicate row.
	query := `
		INSERT INTO consultation_participants (consultation_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (consultation_id, user_id)
		DO UPDATE SET joined_at = $4, left_at = NULL, updated_at = $4
		RETURNING ` + participantColumns

	return scanParticipant(r.db.QueryRow(ctx, query, consultationID, userID, role, now))
}

func (r *ParticipantRepositoryImpl) Leave(ctx context.Context, consultationID, userID int64, now time.Time) (bool, error) {
	query := `
		UPDATE consultation_participants
		SET left_at = $1, updated_at = $1
		WHERE consultation_id = $2 AND user_id = $3 AND left_at IS NULL`

	tag, err := r.db.Exec(ctx, query, now, consultationID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ParticipantRepositoryImpl) GetByConsultationAndUser(ctx context.Context, consultationID, userID int64) (*domain.ConsultationParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM consultation_participants WHERE consultation_id = $1 AND user_id = $2`
	return scanParticipant(r.db.QueryRow(ctx, query, consultationID, userID))
}

func (r *ParticipantRepositoryImpl) ListByConsultation(ctx context.Context, consultationID int64) ([]domain.ConsultationParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM consultation_participants WHERE consultation_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, consultationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []domain.ConsultationParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}

	return participants, rows.Err()
}

func (r *ParticipantRepositoryImpl) IncrementConnectionIssues(ctx context.Context, consultationID, userID int64) error {
	query := `
		UPDATE consultation_participants
		SET connection_issues = connection_issues + 1, updated_at = $1
		WHERE consultation_id = $2 AND user_id = $3`

	tag, err := r.db.Exec(ctx, query, time.Now(), consultationID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
