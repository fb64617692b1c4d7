package repository

import (
	"context"
	"fmt"
	"strings"

	"telemed/internal/domain"
)

type MessageRepositoryImpl struct {
	db DB
}

func NewMessageRepository(db DB) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, consultationID, senderID int64, dto domain.CreateMessageDTO) (*domain.ConsultationMessage, error) {
	query := `
		INSERT INTO consultation_messages (consultation_id, sender_id, message_type, content, is_private, file_url, file_name, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, consultation_id, sender_id, message_type, content, is_private, file_url, file_name, file_size, created_at`

	var m domain.ConsultationMessage
	err := r.db.QueryRow(ctx, query,
		consultationID,
		senderID,
		dto.Type,
		dto.Content,
		dto.IsPrivate,
		dto.FileURL,
		dto.FileName,
		dto.FileSize,
	).Scan(
		&m.ID,
		&m.ConsultationID,
		&m.SenderID,
		&m.Type,
		&m.Content,
		&m.IsPrivate,
		&m.FileURL,
		&m.FileName,
		&m.FileSize,
		&m.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepositoryImpl) List(ctx context.Context, filter domain.MessageFilter) ([]domain.ConsultationMessage, error) {
	conditions := []string{"cm.consultation_id = $1"}
	args := []interface{}{filter.ConsultationID}
	argCount := 2

	if filter.SenderID != nil {
		conditions = append(conditions, fmt.Sprintf("cm.sender_id = $%d", argCount))
		args = append(args, *filter.SenderID)
		argCount++
	}

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("cm.message_type = $%d", argCount))
		args = append(args, *filter.Type)
		argCount++
	}

	if !filter.IncludePrivate {
		conditions = append(conditions, "cm.is_private = FALSE")
	}

	// Ordering by (created_at, id) keeps replay identical to the original
	// broadcast order even when two messages share a timestamp.
	query := `
		SELECT cm.id, cm.consultation_id, cm.sender_id, cm.message_type, cm.content,
			cm.is_private, cm.file_url, cm.file_name, cm.file_size, cm.created_at,
			cp.role as sender_role
		FROM consultation_messages cm
		LEFT JOIN consultation_participants cp
			ON cp.consultation_id = cm.consultation_id AND cp.user_id = cm.sender_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY cm.created_at ASC, cm.id ASC`

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

	var messages []domain.ConsultationMessage
	for rows.Next() {
		var m domain.ConsultationMessage
		err := rows.Scan(
			&m.ID,
			&m.ConsultationID,
			&m.SenderID,
			&m.Type,
			&m.Content,
			&m.IsPrivate,
			&m.FileURL,
			&m.FileName,
			&m.FileSize,
			&m.Timestamp,
			&m.SenderRole,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, filter domain.MessageFilter) (int64, error) {
	conditions := []string{"consultation_id = $1"}
	args := []interface{}{filter.ConsultationID}
	argCount := 2

	if filter.SenderID != nil {
		conditions = append(conditions, fmt.Sprintf("sender_id = $%d", argCount))
		args = append(args, *filter.SenderID)
		argCount++
	}

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("message_type = $%d", argCount))
		args = append(args, *filter.Type)
		argCount++
	}

	if !filter.IncludePrivate {
		conditions = append(conditions, "is_private = FALSE")
	}

	query := "SELECT COUNT(*) FROM consultation_messages WHERE " + strings.Join(conditions, " AND ")

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}
