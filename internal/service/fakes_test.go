package service

import (
	"context"
	"sync"
	"time"

	"telemed/internal/domain"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(event domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) byType(t domain.EventType) []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// fakeConsultationRepo is an in-memory ConsultationRepository with the same
// guarded-transition semantics as the SQL implementation.
type fakeConsultationRepo struct {
	mu            sync.Mutex
	consultations map[int64]*domain.Consultation
	nextID        int64
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{consultations: make(map[int64]*domain.Consultation), nextID: 1}
}

func (r *fakeConsultationRepo) put(c *domain.Consultation) *domain.Consultation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	cp := *c
	r.consultations[c.ID] = &cp
	return c
}

func (r *fakeConsultationRepo) Create(ctx context.Context, dto domain.CreateConsultationDTO, meeting domain.Meeting) (*domain.Consultation, error) {
	c := &domain.Consultation{
		BookingID:        dto.BookingID,
		DoctorID:         dto.DoctorID,
		PatientID:        dto.PatientID,
		Provider:         meeting.Provider,
		MeetingID:        &meeting.MeetingID,
		MeetingURL:       &meeting.MeetingURL,
		Status:           domain.ConsultationStatusScheduled,
		ScheduledStart:   dto.ScheduledStart,
		RecordingEnabled: dto.RecordingEnabled,
		CreatedAt:        time.Now(),
	}
	r.put(c)
	return r.GetByID(ctx, c.ID)
}

func (r *fakeConsultationRepo) GetByID(_ context.Context, id int64) (*domain.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConsultationRepo) List(_ context.Context, filter domain.ConsultationFilter) ([]domain.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Consultation
	for _, c := range r.consultations {
		if c.DeletedAt != nil {
			continue
		}
		if filter.DoctorID != nil && c.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && c.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeConsultationRepo) CountByFilter(ctx context.Context, filter domain.ConsultationFilter) (int, error) {
	list, err := r.List(ctx, filter)
	return len(list), err
}

func (r *fakeConsultationRepo) Update(_ context.Context, id int64, dto domain.UpdateConsultationDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if dto.Notes != nil {
		c.Notes = dto.Notes
	}
	if dto.ConnectionQuality != nil {
		c.ConnectionQuality = dto.ConnectionQuality
	}
	if dto.RecordingURL != nil {
		c.RecordingURL = dto.RecordingURL
	}
	return nil
}

func (r *fakeConsultationRepo) Start(_ context.Context, id int64, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if c.Status != domain.ConsultationStatusScheduled && c.Status != domain.ConsultationStatusWaiting {
		return false, nil
	}
	c.Status = domain.ConsultationStatusInProgress
	started := now
	c.ActualStart = &started
	return true, nil
}

func (r *fakeConsultationRepo) Complete(_ context.Context, id int64, endedAt time.Time, durationMinutes int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if c.Status != domain.ConsultationStatusInProgress {
		return false, nil
	}
	c.Status = domain.ConsultationStatusCompleted
	end := endedAt
	c.ActualEnd = &end
	c.DurationMinutes = &durationMinutes
	return true, nil
}

func (r *fakeConsultationRepo) TransitionStatus(_ context.Context, id int64, from []domain.ConsultationStatus, to domain.ConsultationStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	for _, f := range from {
		if c.Status == f {
			c.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConsultationRepo) Reschedule(_ context.Context, id int64, newStart time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if c.Status.IsTerminal() {
		return false, nil
	}
	c.Status = domain.ConsultationStatusScheduled
	c.ScheduledStart = newStart
	c.ActualStart = nil
	c.ActualEnd = nil
	c.DurationMinutes = nil
	return true, nil
}

func (r *fakeConsultationRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

// fakeWaitingRoomRepo is an in-memory WaitingRoomRepository keyed by
// consultation.
type fakeWaitingRoomRepo struct {
	mu     sync.Mutex
	rooms  map[int64]*domain.WaitingRoom
	nextID int64
	// doctorOf maps consultations to doctors for queue queries.
	doctorOf map[int64]int64
}

func newFakeWaitingRoomRepo() *fakeWaitingRoomRepo {
	return &fakeWaitingRoomRepo{
		rooms:    make(map[int64]*domain.WaitingRoom),
		doctorOf: make(map[int64]int64),
		nextID:   1,
	}
}

func (r *fakeWaitingRoomRepo) GetByConsultationID(_ context.Context, consultationID int64) (*domain.WaitingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[consultationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *fakeWaitingRoomRepo) CreateOrReactivate(_ context.Context, consultationID int64, now time.Time, position, estimatedWaitMinutes int) (*domain.WaitingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[consultationID]; ok {
		room.IsActive = true
		room.PatientJoinedAt = now
		room.DoctorNotifiedAt = nil
		room.QueuePosition = position
		room.EstimatedWaitMinutes = estimatedWaitMinutes
		room.LastActivity = now
		cp := *room
		return &cp, nil
	}
	room := &domain.WaitingRoom{
		ID:                   r.nextID,
		ConsultationID:       consultationID,
		PatientJoinedAt:      now,
		EstimatedWaitMinutes: estimatedWaitMinutes,
		QueuePosition:        position,
		IsActive:             true,
		LastActivity:         now,
		CreatedAt:            now,
	}
	r.nextID++
	r.rooms[consultationID] = room
	cp := *room
	return &cp, nil
}

func (r *fakeWaitingRoomRepo) CountWaitingAhead(_ context.Context, doctorID int64, joinedBefore time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for cid, room := range r.rooms {
		if r.doctorOf[cid] != doctorID {
			continue
		}
		if room.IsActive && room.DoctorNotifiedAt == nil && !room.PatientJoinedAt.After(joinedBefore) {
			count++
		}
	}
	return count, nil
}

func (r *fakeWaitingRoomRepo) NotifyDoctor(_ context.Context, id int64, now time.Time) (*domain.WaitingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID == id {
			notified := now
			room.DoctorNotifiedAt = &notified
			room.LastActivity = now
			cp := *room
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeWaitingRoomRepo) UpdateEstimatedWait(_ context.Context, id int64, minutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID == id {
			room.EstimatedWaitMinutes = minutes
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeWaitingRoomRepo) UpdateQueuePosition(_ context.Context, id int64, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID == id {
			room.QueuePosition = position
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeWaitingRoomRepo) DecrementPositionsForDoctor(_ context.Context, doctorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for cid, room := range r.rooms {
		if r.doctorOf[cid] != doctorID || !room.IsActive {
			continue
		}
		if room.QueuePosition > 1 {
			room.QueuePosition--
		}
	}
	return nil
}

func (r *fakeWaitingRoomRepo) ListActiveByDoctor(_ context.Context, doctorID int64) ([]domain.WaitingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WaitingRoom
	for cid, room := range r.rooms {
		if r.doctorOf[cid] == doctorID && room.IsActive {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *fakeWaitingRoomRepo) Deactivate(_ context.Context, consultationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[consultationID]; ok {
		room.IsActive = false
	}
	return nil
}

func (r *fakeWaitingRoomRepo) TouchActivity(_ context.Context, id int64, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID == id {
			room.LastActivity = now
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeParticipantRepo is an in-memory ParticipantRepository.
type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants map[int64]map[int64]*domain.ConsultationParticipant
	nextID       int64
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{
		participants: make(map[int64]map[int64]*domain.ConsultationParticipant),
		nextID:       1,
	}
}

func (r *fakeParticipantRepo) Join(_ context.Context, consultationID, userID int64, role domain.UserRole, now time.Time) (*domain.ConsultationParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser, ok := r.participants[consultationID]
	if !ok {
		byUser = make(map[int64]*domain.ConsultationParticipant)
		r.participants[consultationID] = byUser
	}
	joined := now
	if p, ok := byUser[userID]; ok {
		p.JoinedAt = &joined
		p.LeftAt = nil
		cp := *p
		return &cp, nil
	}
	p := &domain.ConsultationParticipant{
		ID:             r.nextID,
		ConsultationID: consultationID,
		UserID:         userID,
		Role:           role,
		JoinedAt:       &joined,
		CreatedAt:      now,
	}
	r.nextID++
	byUser[userID] = p
	cp := *p
	return &cp, nil
}

func (r *fakeParticipantRepo) Leave(_ context.Context, consultationID, userID int64, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[consultationID][userID]
	if !ok || p.LeftAt != nil {
		return false, nil
	}
	left := now
	p.LeftAt = &left
	return true, nil
}

func (r *fakeParticipantRepo) GetByConsultationAndUser(_ context.Context, consultationID, userID int64) (*domain.ConsultationParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[consultationID][userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeParticipantRepo) ListByConsultation(_ context.Context, consultationID int64) ([]domain.ConsultationParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ConsultationParticipant
	for _, p := range r.participants[consultationID] {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeParticipantRepo) IncrementConnectionIssues(_ context.Context, consultationID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[consultationID][userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.ConnectionIssues++
	return nil
}

// fakeProviderRepo is an in-memory ProviderRepository.
type fakeProviderRepo struct {
	mu      sync.Mutex
	configs map[domain.VideoProvider]*domain.VideoProviderConfig
}

func newFakeProviderRepo(configs ...domain.VideoProviderConfig) *fakeProviderRepo {
	r := &fakeProviderRepo{configs: make(map[domain.VideoProvider]*domain.VideoProviderConfig)}
	for i := range configs {
		cp := configs[i]
		r.configs[cp.Provider] = &cp
	}
	return r
}

func (r *fakeProviderRepo) GetByProvider(_ context.Context, provider domain.VideoProvider) (*domain.VideoProviderConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.configs[provider]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeProviderRepo) List(_ context.Context) ([]domain.VideoProviderConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.VideoProviderConfig
	for _, c := range r.configs {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeProviderRepo) Update(_ context.Context, provider domain.VideoProvider, dto domain.UpdateProviderDTO) (*domain.VideoProviderConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.configs[provider]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}
	if dto.PriorityOrder != nil {
		c.PriorityOrder = *dto.PriorityOrder
	}
	if dto.MaxParticipants != nil {
		c.MaxParticipants = *dto.MaxParticipants
	}
	cp := *c
	return &cp, nil
}

func (r *fakeProviderRepo) UpdateCredentials(_ context.Context, provider domain.VideoProvider, apiKey, apiSecret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.configs[provider]
	if !ok {
		return domain.ErrNotFound
	}
	c.APIKey = &apiKey
	c.APISecret = &apiSecret
	return nil
}

// fakeMessageRepo is an in-memory append-only MessageRepository.
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []domain.ConsultationMessage
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (r *fakeMessageRepo) Create(_ context.Context, consultationID, senderID int64, dto domain.CreateMessageDTO) (*domain.ConsultationMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := domain.ConsultationMessage{
		ID:             r.nextID,
		ConsultationID: consultationID,
		SenderID:       senderID,
		Type:           dto.Type,
		Content:        dto.Content,
		IsPrivate:      dto.IsPrivate,
		FileURL:        dto.FileURL,
		FileName:       dto.FileName,
		FileSize:       dto.FileSize,
		Timestamp:      time.Now(),
	}
	r.nextID++
	r.messages = append(r.messages, m)
	cp := m
	return &cp, nil
}

func (r *fakeMessageRepo) List(_ context.Context, filter domain.MessageFilter) ([]domain.ConsultationMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ConsultationMessage
	for _, m := range r.messages {
		if m.ConsultationID != filter.ConsultationID {
			continue
		}
		if m.IsPrivate && !filter.IncludePrivate {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, filter domain.MessageFilter) (int64, error) {
	list, err := r.List(ctx, filter)
	return int64(len(list)), err
}

// fakeIssueRepo is an in-memory IssueRepository.
type fakeIssueRepo struct {
	mu     sync.Mutex
	issues map[int64]*domain.TechnicalIssue
	nextID int64
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[int64]*domain.TechnicalIssue), nextID: 1}
}

func (r *fakeIssueRepo) Create(_ context.Context, consultationID, reporterID int64, dto domain.ReportIssueDTO) (*domain.TechnicalIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue := &domain.TechnicalIssue{
		ID:             r.nextID,
		ConsultationID: consultationID,
		ReporterID:     reporterID,
		Type:           dto.Type,
		Severity:       dto.Severity,
		Description:    dto.Description,
		DeviceInfo:     dto.DeviceInfo,
		BrowserInfo:    dto.BrowserInfo,
		NetworkInfo:    dto.NetworkInfo,
		CreatedAt:      time.Now(),
	}
	r.nextID++
	r.issues[issue.ID] = issue
	cp := *issue
	return &cp, nil
}

func (r *fakeIssueRepo) GetByID(_ context.Context, id int64) (*domain.TechnicalIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *issue
	return &cp, nil
}

func (r *fakeIssueRepo) ListByConsultation(_ context.Context, consultationID int64, openOnly bool) ([]domain.TechnicalIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TechnicalIssue
	for _, issue := range r.issues {
		if issue.ConsultationID != consultationID {
			continue
		}
		if openOnly && issue.Resolved {
			continue
		}
		out = append(out, *issue)
	}
	return out, nil
}

func (r *fakeIssueRepo) Resolve(_ context.Context, id int64, resolvedBy *int64, autoResolved bool, notes *string, now time.Time) (*domain.TechnicalIssue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	issue.Resolved = true
	resolved := now
	issue.ResolvedAt = &resolved
	issue.ResolvedBy = resolvedBy
	issue.AutoResolved = autoResolved
	issue.ResolutionNotes = notes
	cp := *issue
	return &cp, nil
}
