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

const providerColumns = `id, provider, is_active, api_key, api_secret,
		supports_recording, auto_recording, supports_waiting_room, requires_authentication,
		max_participants, meeting_timeout_minutes, rate_limit_per_minute, priority_order, settings, created_at, updated_at`

type ProviderRepositoryImpl struct {
	db DB
}

func NewProviderRepository(db DB) *ProviderRepositoryImpl {
	return &ProviderRepositoryImpl{db: db}
}

func scanProvider(row pgx.Row) (*domain.VideoProviderConfig, error) {
	var c domain.VideoProviderConfig
	err := row.Scan(
		&c.ID,
		&c.Provider,
		&c.IsActive,
		&c.APIKey,
		&c.APISecret,
		&c.SupportsRecording,
		&c.AutoRecording,
		&c.SupportsWaitingRoom,
		&c.RequiresAuthentication,
		&c.MaxParticipants,
		&c.MeetingTimeoutMinutes,
		&c.RateLimitPerMinute,
		&c.PriorityOrder,
		&c.Settings,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProviderRepositoryImpl) GetByProvider(ctx context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error) {
	query := `SELECT ` + providerColumns + ` FROM video_provider_configs WHERE provider = $1`
	return scanProvider(r.db.QueryRow(ctx, query, provider))
}

func (r *ProviderRepositoryImpl) List(ctx context.Context) ([]domain.VideoProviderConfig, error) {
	query := `SELECT ` + providerColumns + ` FROM video_provider_configs ORDER BY priority_order ASC, provider ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []domain.VideoProviderConfig
	for rows.Next() {
		c, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *c)
	}

	return configs, rows.Err()
}

func (r *ProviderRepositoryImpl) Update(ctx context.Context, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error) {
	var setParts []string
	var args []interface{}
	argCount := 1

	if dto.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *dto.IsActive)
		argCount++
	}

	if dto.SupportsRecording != nil {
		setParts = append(setParts, fmt.Sprintf("supports_recording = $%d", argCount))
		args = append(args, *dto.SupportsRecording)
		argCount++
	}

	if dto.AutoRecording != nil {
		setParts = append(setParts, fmt.Sprintf("auto_recording = $%d", argCount))
		args = append(args, *dto.AutoRecording)
		argCount++
	}

	if dto.SupportsWaitingRoom != nil {
		setParts = append(setParts, fmt.Sprintf("supports_waiting_room = $%d", argCount))
		args = append(args, *dto.SupportsWaitingRoom)
		argCount++
	}

	if dto.RequiresAuthentication != nil {
		setParts = append(setParts, fmt.Sprintf("requires_authentication = $%d", argCount))
		args = append(args, *dto.RequiresAuthentication)
		argCount++
	}

	if dto.MaxParticipants != nil {
		setParts = append(setParts, fmt.Sprintf("max_participants = $%d", argCount))
		args = append(args, *dto.MaxParticipants)
		argCount++
	}

	if dto.MeetingTimeoutMinutes != nil {
		setParts = append(setParts, fmt.Sprintf("meeting_timeout_minutes = $%d", argCount))
		args = append(args, *dto.MeetingTimeoutMinutes)
		argCount++
	}

	if dto.RateLimitPerMinute != nil {
		setParts = append(setParts, fmt.Sprintf("rate_limit_per_minute = $%d", argCount))
		args = append(args, *dto.RateLimitPerMinute)
		argCount++
	}

	if dto.PriorityOrder != nil {
		setParts = append(setParts, fmt.Sprintf("priority_order = $%d", argCount))
		args = append(args, *dto.PriorityOrder)
		argCount++
	}

	if len(setParts) == 0 {
		return r.GetByProvider(ctx, provider)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, provider)
	query := fmt.Sprintf(`
		UPDATE video_provider_configs
		SET %s
		WHERE provider = $%d
		RETURNING `+providerColumns,
		strings.Join(setParts, ", "), argCount)

	return scanProvider(r.db.QueryRow(ctx, query, args...))
}

func (r *ProviderRepositoryImpl) UpdateCredentials(ctx context.Context, provider domain.VideoProvider, apiKey, apiSecret string) error {
	query := `UPDATE video_provider_configs SET api_key = $1, api_secret = $2, updated_at = $3 WHERE provider = $4`

	tag, err := r.db.Exec(ctx, query, apiKey, apiSecret, time.Now(), provider)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
