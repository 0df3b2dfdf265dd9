package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory repository fakes. Specifications are interpreted by type so the
// services under test run against the same filtering semantics the GORM
// implementations produce.

type fakeStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ChatSession
	messages map[uuid.UUID]*entity.ChatMessage
	settings map[uuid.UUID]*entity.UserSettings // keyed by UserId
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[uuid.UUID]*entity.ChatSession),
		messages: make(map[uuid.UUID]*entity.ChatMessage),
		settings: make(map[uuid.UUID]*entity.UserSettings),
	}
}

func matchSession(session *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if session.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if session.UserId != sp.UserID {
				return false
			}
		case specification.CreatedBefore:
			if !session.CreatedAt.Before(sp.Cutoff) {
				return false
			}
		case specification.ExcludeArchived:
			if session.Archived {
				return false
			}
		}
	}
	return true
}

func matchMessage(message *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByChatSessionID:
			if message.ChatSessionId != sp.ChatSessionID {
				return false
			}
		case specification.ByChatSessionIDs:
			found := false
			for _, id := range sp.ChatSessionIDs {
				if message.ChatSessionId == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, session := range r.store.sessions {
		if session.UserId == userId {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	sessions, _ := r.FindAll(ctx, specs...)
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.ChatSession, 0)
	for _, session := range r.store.sessions {
		if matchSession(session, specs) {
			result = append(result, session)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	sessions, _ := r.FindAll(ctx, specs...)
	return int64(len(sessions)), nil
}

type fakeMessageRepo struct{ store *fakeStore }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages[message.Id] = message
	return nil
}

func (r *fakeMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, message := range r.store.messages {
		if message.ChatSessionId == sessionId {
			delete(r.store.messages, id)
		}
	}
	return nil
}

func (r *fakeMessageRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, message := range r.store.messages {
		if session, ok := r.store.sessions[message.ChatSessionId]; ok && session.UserId == userId {
			delete(r.store.messages, id)
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.ChatMessage, 0)
	for _, message := range r.store.messages {
		if matchMessage(message, specs) {
			result = append(result, message)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, _ := r.FindAll(ctx, specs...)
	return int64(len(messages)), nil
}

type fakeSettingsRepo struct{ store *fakeStore }

func (r *fakeSettingsRepo) Create(ctx context.Context, settings *entity.UserSettings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.settings[settings.UserId] = settings
	return nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.UserSettings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.settings[settings.UserId] = settings
	return nil
}

func (r *fakeSettingsRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.settings[userId], nil
}

func (r *fakeSettingsRepo) FindAllAutoDelete(ctx context.Context) ([]*entity.UserSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.UserSettings, 0)
	for _, settings := range r.store.settings {
		if settings.AutoDeleteHistory {
			result = append(result, settings)
		}
	}
	return result, nil
}

type fakeUnitOfWork struct{ store *fakeStore }

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error { return nil }
func (u *fakeUnitOfWork) Rollback() error { return nil }

func (u *fakeUnitOfWork) UserSettingsRepository() contract.UserSettingsRepository {
	return &fakeSettingsRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeSettingsCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.UserSettings
}

func newFakeSettingsCache() *fakeSettingsCache {
	return &fakeSettingsCache{entries: make(map[uuid.UUID]*entity.UserSettings)}
}

func (c *fakeSettingsCache) Get(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	settings, ok := c.entries[userId]
	if !ok {
		return nil, false
	}
	cp := *settings
	return &cp, true
}

func (c *fakeSettingsCache) Save(ctx context.Context, settings *entity.UserSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *settings
	c.entries[settings.UserId] = &cp
}

func (c *fakeSettingsCache) SaveIfAbsent(ctx context.Context, settings *entity.UserSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[settings.UserId]; ok {
		return
	}
	cp := *settings
	c.entries[settings.UserId] = &cp
}

// --- Event publisher, logger, LLM ---

type recordingPublisher struct {
	mu      sync.Mutex
	swept   []int
	cleared []int
	updated int
}

func (p *recordingPublisher) PublishHistorySwept(ctx context.Context, userId uuid.UUID, deletedSessions int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.swept = append(p.swept, deletedSessions)
}

func (p *recordingPublisher) PublishHistoryCleared(ctx context.Context, userId uuid.UUID, deletedSessions int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleared = append(p.cleared, deletedSessions)
}

func (p *recordingPublisher) PublishSettingsUpdated(ctx context.Context, userId uuid.UUID, saveChatHistory, autoDeleteHistory bool, autoDeleteDays int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated++
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{}) {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

var errLLMDown = errors.New("model unavailable")

func seedSession(store *fakeStore, userId uuid.UUID, age time.Duration, messageCount int) *entity.ChatSession {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "session",
		CreatedAt: time.Now().Add(-age),
	}
	store.sessions[session.Id] = session
	for i := 0; i < messageCount; i++ {
		msg := &entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          "hello",
			Role:          "user",
			ChatSessionId: session.Id,
			CreatedAt:     session.CreatedAt.Add(time.Duration(i) * time.Second),
		}
		store.messages[msg.Id] = msg
	}
	return session
}
