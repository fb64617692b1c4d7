package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/internal/repository"
	"telemed/internal/storage"
)

type MessageServiceImpl struct {
	repo            repository.MessageRepository
	participantRepo repository.ParticipantRepository
	publisher       EventPublisher
	files           storage.FileStorage
	logger          *zap.Logger

	// sendMu serializes persist-then-publish per consultation so broadcast
	// order always matches persistence order.
	mu     sync.Mutex
	sendMu map[int64]*sync.Mutex
}

func NewMessageService(
	repo repository.MessageRepository,
	participantRepo repository.ParticipantRepository,
	publisher EventPublisher,
	files storage.FileStorage,
	logger *zap.Logger,
) *MessageServiceImpl {
	return &MessageServiceImpl{
		repo:            repo,
		participantRepo: participantRepo,
		publisher:       publisher,
		files:           files,
		logger:          logger,
		sendMu:          make(map[int64]*sync.Mutex),
	}
}

func (s *MessageServiceImpl) lockFor(consultationID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.sendMu[consultationID]
	if !ok {
		mu = &sync.Mutex{}
		s.sendMu[consultationID] = mu
	}
	return mu
}

func (s *MessageServiceImpl) Send(ctx context.Context, identity domain.Identity, consultationID int64, dto domain.CreateMessageDTO) (*domain.ConsultationMessage, error) {
	participant, err := s.participantRepo.GetByConsultationAndUser(ctx, consultationID, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, err
	}

	// Private notes are a clinician-side feature.
	if dto.IsPrivate && !identity.Role.CanSeePrivateMessages() {
		return nil, domain.ErrNotAuthorized
	}

	if dto.Type == "" {
		dto.Type = domain.MessageTypeText
	}
	if strings.TrimSpace(dto.Content) == "" {
		return nil, fmt.Errorf("message content must not be empty")
	}

	mu := s.lockFor(consultationID)
	mu.Lock()
	defer mu.Unlock()

	message, err := s.repo.Create(ctx, consultationID, identity.UserID, dto)
	if err != nil {
		return nil, fmt.Errorf("persisting message: %w", err)
	}
	message.SenderRole = &participant.Role

	event := domain.NewEvent(domain.EventChatMessage, consultationID, message)
	event.Private = message.IsPrivate
	s.publisher.Publish(event)

	return message, nil
}

// SendSystem records a lifecycle announcement authored by the platform
// itself. System messages are never private and carry no sender.
func (s *MessageServiceImpl) SendSystem(ctx context.Context, consultationID int64, content string) (*domain.ConsultationMessage, error) {
	mu := s.lockFor(consultationID)
	mu.Lock()
	defer mu.Unlock()

	message, err := s.repo.Create(ctx, consultationID, 0, domain.CreateMessageDTO{
		Content: content,
		Type:    domain.MessageTypeSystem,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting system message: %w", err)
	}

	s.publisher.Publish(domain.NewEvent(domain.EventChatMessage, consultationID, message))
	return message, nil
}

func (s *MessageServiceImpl) AttachFile(ctx context.Context, identity domain.Identity, consultationID int64, filename string, data []byte, isPrivate bool) (*domain.ConsultationMessage, error) {
	if s.files == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}
	if _, err := s.participantRepo.GetByConsultationAndUser(ctx, consultationID, identity.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, err
	}
	if isPrivate && !identity.Role.CanSeePrivateMessages() {
		return nil, domain.ErrNotAuthorized
	}

	objectName := fmt.Sprintf("consultations/%d/%s%s", consultationID, uuid.New().String(), filepath.Ext(filename))
	url, err := s.files.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("uploading attachment: %w", err)
	}

	mu := s.lockFor(consultationID)
	mu.Lock()
	defer mu.Unlock()

	size := int64(len(data))
	message, err := s.repo.Create(ctx, consultationID, identity.UserID, domain.CreateMessageDTO{
		Content:   filename,
		Type:      domain.MessageTypeFile,
		IsPrivate: isPrivate,
		FileURL:   &url,
		FileName:  &filename,
		FileSize:  &size,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting file message: %w", err)
	}

	event := domain.NewEvent(domain.EventChatMessage, consultationID, message)
	event.Private = message.IsPrivate
	s.publisher.Publish(event)

	s.logger.Info("attachment shared",
		zap.Int64("consultation_id", consultationID),
		zap.String("object", objectName),
		zap.Int("size_bytes", len(data)))

	return message, nil
}

func (s *MessageServiceImpl) History(ctx context.Context, identity domain.Identity, consultationID int64, limit, offset int) ([]domain.ConsultationMessage, int64, error) {
	if _, err := s.participantRepo.GetByConsultationAndUser(ctx, consultationID, identity.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) && identity.Role != domain.UserRoleAdmin {
			return nil, 0, domain.ErrNotAuthorized
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, 0, err
		}
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filter := domain.MessageFilter{
		ConsultationID: consultationID,
		IncludePrivate: identity.Role.CanSeePrivateMessages(),
		Limit:          limit,
		Offset:         offset,
	}

	messages, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return messages, int64(len(messages)), nil
	}

	return messages, count, nil
}
