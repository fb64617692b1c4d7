package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"telemed/internal/domain"
)

const waitingRoomColumns = `id, consultation_id, patient_joined_at, doctor_notified_at,
		estimated_wait_minutes, queue_position, is_active, last_activity, created_at, updated_at`

type WaitingRoomRepositoryImpl struct {
	db DB
}

func NewWaitingRoomRepository(db DB) *WaitingRoomRepositoryImpl {
	return &WaitingRoomRepositoryImpl{db: db}
}

func scanWaitingRoom(row pgx.Row) (*domain.WaitingRoom, error) {
	var w domain.WaitingRoom
	err := row.Scan(
		&w.ID,
		&w.ConsultationID,
		&w.PatientJoinedAt,
		&w.DoctorNotifiedAt,
		&w.EstimatedWaitMinutes,
		&w.QueuePosition,
		&w.IsActive,
		&w.LastActivity,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WaitingRoomRepositoryImpl) GetByConsultationID(ctx context.Context, consultationID int64) (*domain.WaitingRoom, error) {
	query := `SELECT ` + waitingRoomColumns + ` FROM waiting_rooms WHERE consultation_id = $1`
	return scanWaitingRoom(r.db.QueryRow(ctx, query, consultationID))
}

func (r *WaitingRoomRepositoryImpl) CreateOrReactivate(ctx context.Context, consultationID int64, now time.Time, position, estimatedWaitMinutes int) (*domain.WaitingRoom, error) {
	// 0-or-1 row per consultation: a patient returning after a disconnect
	// reactivates the existing entry.
	query := `
		INSERT INTO waiting_rooms (consultation_id, patient_joined_at, queue_position, estimated_wait_minutes, is_active, last_activity)
		VALUES ($1, $2, $3, $4, TRUE, $2)
		ON CONFLICT (consultation_id)
		DO UPDATE SET patient_joined_at = $2, queue_position = $3, estimated_wait_minutes = $4,
			is_active = TRUE, doctor_notified_at = NULL, last_activity = $2, updated_at = $2
		RETURNING ` + waitingRoomColumns

	return scanWaitingRoom(r.db.QueryRow(ctx, query, consultationID, now, position, estimatedWaitMinutes))
}

func (r *WaitingRoomRepositoryImpl) CountWaitingAhead(ctx context.Context, doctorID int64, joinedBefore time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM waiting_rooms wr
		JOIN consultations c ON wr.consultation_id = c.id
		WHERE c.doctor_id = $1 AND wr.is_active = TRUE AND wr.doctor_notified_at IS NULL
			AND wr.patient_joined_at < $2 AND c.deleted_at IS NULL`

	var count int
	err := r.db.QueryRow(ctx, query, doctorID, joinedBefore).Scan(&count)
	return count, err
}

func (r *WaitingRoomRepositoryImpl) NotifyDoctor(ctx context.Context, id int64, now time.Time) (*domain.WaitingRoom, error) {
	query := `
		UPDATE waiting_rooms
		SET doctor_notified_at = $1, last_activity = $1, updated_at = $1
		WHERE id = $2
		RETURNING ` + waitingRoomColumns

	return scanWaitingRoom(r.db.QueryRow(ctx, query, now, id))
}

func (r *WaitingRoomRepositoryImpl) UpdateEstimatedWait(ctx context.Context, id int64, minutes int) error {
	query := `UPDATE waiting_rooms SET estimated_wait_minutes = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, minutes, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WaitingRoomRepositoryImpl) UpdateQueuePosition(ctx context.Context, id int64, position int) error {
	query := `UPDATE waiting_rooms SET queue_position = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, position, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WaitingRoomRepositoryImpl) DecrementPositionsForDoctor(ctx context.Context, doctorID int64) error {
	query := `
		UPDATE waiting_rooms wr
		SET queue_position = GREATEST(wr.queue_position - 1, 1), updated_at = $1
		FROM consultations c
		WHERE wr.consultation_id = c.id AND c.doctor_id = $2
			AND wr.is_active = TRUE AND wr.doctor_notified_at IS NULL`

	_, err := r.db.Exec(ctx, query, time.Now(), doctorID)
	return err
}

func (r *WaitingRoomRepositoryImpl) ListActiveByDoctor(ctx context.Context, doctorID int64) ([]domain.WaitingRoom, error) {
	query := `
		SELECT ` + prefixColumns("wr", waitingRoomColumns) + `
		FROM waiting_rooms wr
		JOIN consultations c ON wr.consultation_id = c.id
		WHERE c.doctor_id = $1 AND wr.is_active = TRUE AND c.deleted_at IS NULL
		ORDER BY wr.queue_position ASC, wr.patient_joined_at ASC`

	rows, err := r.db.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WaitingRoom
	for rows.Next() {
		w, err := scanWaitingRoom(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *w)
	}

	return entries, rows.Err()
}

func (r *WaitingRoomRepositoryImpl) Deactivate(ctx context.Context, consultationID int64) error {
	query := `UPDATE waiting_rooms SET is_active = FALSE, updated_at = $1 WHERE consultation_id = $2 AND is_active = TRUE`

	_, err := r.db.Exec(ctx, query, time.Now(), consultationID)
	return err
}

func (r *WaitingRoomRepositoryImpl) TouchActivity(ctx context.Context, id int64, now time.Time) error {
	query := `UPDATE waiting_rooms SET last_activity = $1, updated_at = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
