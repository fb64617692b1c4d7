package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"telemed/internal/domain"
)

const consultationColumns = `id, booking_id, doctor_id, patient_id, provider, meeting_id, meeting_url, meeting_password,
		status, scheduled_start, actual_start, actual_end, duration_minutes,
		recording_enabled, recording_url, connection_quality, notes, created_at, updated_at, deleted_at`

type ConsultationRepositoryImpl struct {
	db DB
}

func NewConsultationRepository(db DB) *ConsultationRepositoryImpl {
	return &ConsultationRepositoryImpl{db: db}
}

func scanConsultation(row pgx.Row) (*domain.Consultation, error) {
	var c domain.Consultation
	err := row.Scan(
		&c.ID,
		&c.BookingID,
		&c.DoctorID,
		&c.PatientID,
		&c.Provider,
		&c.MeetingID,
		&c.MeetingURL,
		&c.MeetingPassword,
		&c.Status,
		&c.ScheduledStart,
		&c.ActualStart,
		&c.ActualEnd,
		&c.DurationMinutes,
		&c.RecordingEnabled,
		&c.RecordingURL,
		&c.ConnectionQuality,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConsultationRepositoryImpl) Create(ctx context.Context, dto domain.CreateConsultationDTO, meeting domain.Meeting) (*domain.Consultation, error) {
	query := `
		INSERT INTO consultations (booking_id, doctor_id, patient_id, provider, meeting_id, meeting_url, meeting_password, status, scheduled_start, recording_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + consultationColumns

	var password *string
	if meeting.Password != "" {
		password = &meeting.Password
	}

	return scanConsultation(r.db.QueryRow(ctx, query,
		dto.BookingID,
		dto.DoctorID,
		dto.PatientID,
		meeting.Provider,
		meeting.MeetingID,
		meeting.MeetingURL,
		password,
		domain.ConsultationStatusScheduled,
		dto.ScheduledStart,
		dto.RecordingEnabled,
	))
}

func (r *ConsultationRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE id = $1 AND deleted_at IS NULL`
	return scanConsultation(r.db.QueryRow(ctx, query, id))
}

func (r *ConsultationRepositoryImpl) List(ctx context.Context, filter domain.ConsultationFilter) ([]domain.Consultation, error) {
	conditions := []string{"deleted_at IS NULL"}
	var args []interface{}
	argCount := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.ScheduledFrom != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_start >= $%d", argCount))
		args = append(args, *filter.ScheduledFrom)
		argCount++
	}

	if filter.ScheduledTo != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_start <= $%d", argCount))
		args = append(args, *filter.ScheduledTo)
		argCount++
	}

	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE ` + strings.Join(conditions, " AND ")
	query += " ORDER BY scheduled_start ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
		argCount++
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consultations []domain.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, *c)
	}

	return consultations, rows.Err()
}

func (r *ConsultationRepositoryImpl) CountByFilter(ctx context.Context, filter domain.ConsultationFilter) (int, error) {
	conditions := []string{"deleted_at IS NULL"}
	var args []interface{}
	argCount := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.ScheduledFrom != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_start >= $%d", argCount))
		args = append(args, *filter.ScheduledFrom)
		argCount++
	}

	if filter.ScheduledTo != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_start <= $%d", argCount))
		args = append(args, *filter.ScheduledTo)
		argCount++
	}

	query := "SELECT COUNT(*) FROM consultations WHERE " + strings.Join(conditions, " AND ")

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *ConsultationRepositoryImpl) Update(ctx context.Context, id int64, dto domain.UpdateConsultationDTO) error {
	var setParts []string
	var args []interface{}
	argCount := 1

	if dto.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *dto.Status)
		argCount++
	}

	if dto.ActualStart != nil {
		setParts = append(setParts, fmt.Sprintf("actual_start = $%d", argCount))
		args = append(args, *dto.ActualStart)
		argCount++
	}

	if dto.ActualEnd != nil {
		setParts = append(setParts, fmt.Sprintf("actual_end = $%d", argCount))
		args = append(args, *dto.ActualEnd)
		argCount++
	}

	if dto.DurationMinutes != nil {
		setParts = append(setParts, fmt.Sprintf("duration_minutes = $%d", argCount))
		args = append(args, *dto.DurationMinutes)
		argCount++
	}

	if dto.ScheduledStart != nil {
		setParts = append(setParts, fmt.Sprintf("scheduled_start = $%d", argCount))
		args = append(args, *dto.ScheduledStart)
		argCount++
	}

	if dto.RecordingURL != nil {
		setParts = append(setParts, fmt.Sprintf("recording_url = $%d", argCount))
		args = append(args, *dto.RecordingURL)
		argCount++
	}

	if dto.ConnectionQuality != nil {
		setParts = append(setParts, fmt.Sprintf("connection_quality = $%d", argCount))
		args = append(args, *dto.ConnectionQuality)
		argCount++
	}

	if dto.Notes != nil {
		setParts = append(setParts, fmt.Sprintf("notes = $%d", argCount))
		args = append(args, *dto.Notes)
		argCount++
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE consultations SET %s WHERE id = $%d AND deleted_at IS NULL",
		strings.Join(setParts, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Start is the single compare-and-swap in the core: the WHERE clause on the
// stored status guarantees only one of two racing callers wins.
func (r *ConsultationRepositoryImpl) Start(ctx context.Context, id int64, now time.Time) (bool, error) {
	query := `
		UPDATE consultations
		SET status = $1, actual_start = $2, updated_at = $2
		WHERE id = $3 AND status IN ($4, $5) AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		domain.ConsultationStatusInProgress,
		now,
		id,
		domain.ConsultationStatusScheduled,
		domain.ConsultationStatusWaiting,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ConsultationRepositoryImpl) Complete(ctx context.Context, id int64, endedAt time.Time, durationMinutes int) (bool, error) {
	query := `
		UPDATE consultations
		SET status = $1, actual_end = $2, duration_minutes = $3, updated_at = $2
		WHERE id = $4 AND status = $5 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		domain.ConsultationStatusCompleted,
		endedAt,
		durationMinutes,
		id,
		domain.ConsultationStatusInProgress,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ConsultationRepositoryImpl) TransitionStatus(ctx context.Context, id int64, from []domain.ConsultationStatus, to domain.ConsultationStatus) (bool, error) {
	placeholders := make([]string, 0, len(from))
	args := []interface{}{to, time.Now(), id}
	argCount := 4
	for _, status := range from {
		placeholders = append(placeholders, fmt.Sprintf("$%d", argCount))
		args = append(args, status)
		argCount++
	}

	query := fmt.Sprintf(`
		UPDATE consultations
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status IN (%s) AND deleted_at IS NULL`,
		strings.Join(placeholders, ", "))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ConsultationRepositoryImpl) Reschedule(ctx context.Context, id int64, newStart time.Time) (bool, error) {
	query := `
		UPDATE consultations
		SET status = $1, scheduled_start = $2, actual_start = NULL, actual_end = NULL, duration_minutes = NULL, updated_at = $3
		WHERE id = $4 AND status NOT IN ($5, $6, $7) AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		domain.ConsultationStatusScheduled,
		newStart,
		time.Now(),
		id,
		domain.ConsultationStatusCompleted,
		domain.ConsultationStatusCancelled,
		domain.ConsultationStatusNoShow,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ConsultationRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE consultations SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
