package service

import (
	"context"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperr"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"
	"ai-chat-be/pkg/retention"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID, includeArchived bool) ([]*dto.ChatSessionResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	AppendMessage(ctx context.Context, userId uuid.UUID, req *dto.AppendMessageRequest) (*dto.ChatMessageResponse, error)
	UpdateSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.ChatSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	ClearHistory(ctx context.Context, userId uuid.UUID) (*dto.ClearHistoryResponse, error)
}

type chatService struct {
	uowFactory      unitofwork.RepositoryFactory
	settingsService ISettingsService
	sweeper         *retention.Sweeper
	llmProvider     llm.LLMProvider
	logger          logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	settingsService ISettingsService,
	sweeper *retention.Sweeper,
	llmProvider llm.LLMProvider,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:      uowFactory,
		settingsService: settingsService,
		sweeper:         sweeper,
		llmProvider:     llmProvider,
		logger:          logger,
	}
}

// guardPersist resolves the user's policy and denies the write when history
// saving is off. Reads are never guarded; existing data stays readable.
func (c *chatService) guardPersist(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	settings, err := c.settingsService.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !retention.CanPersist(settings) {
		return settings, apperr.HistoryDisabled("chat history saving is disabled")
	}
	return settings, nil
}

// sweepAfterWrite runs the opportunistic pass. Sweep failures never fail the
// write that triggered them.
func (c *chatService) sweepAfterWrite(ctx context.Context, userId uuid.UUID) {
	if _, err := c.sweeper.Sweep(ctx, userId); err != nil {
		c.logger.Warn("RETENTION", "Opportunistic sweep failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (c *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if _, err := c.guardPersist(ctx, userId); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	c.sweepAfterWrite(ctx, userId)

	return &dto.CreateSessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (c *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID, includeArchived bool) ([]*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if !includeArchived {
		specs = append(specs, specification.ExcludeArchived{})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, toSessionResponse(session))
	}
	return result, nil
}

func (c *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GetChatHistoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.GetChatHistoryResponse{
		ChatSessionId: session.Id,
		Title:         session.Title,
		Messages:      make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Chat:      m.Chat,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

// SendChat always produces a reply; the retention policy only decides whether
// the exchange is stored. With saving disabled the turn is ephemeral and the
// response reports Persisted=false.
func (c *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	settings, err := c.settingsService.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}
	persist := retention.CanPersist(settings)

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	if persist {
		userMsg := entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          req.Chat,
			Role:          constant.ChatMessageRoleUser,
			ChatSessionId: session.Id,
			CreatedAt:     time.Now(),
		}
		if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
			return nil, err
		}
	}

	llmHistory := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		llmHistory = append(llmHistory, llm.Message{Role: m.Role, Content: m.Chat})
	}
	llmHistory = append(llmHistory, llm.Message{Role: constant.ChatMessageRoleUser, Content: req.Chat})

	reply, err := c.llmProvider.Chat(ctx, llmHistory)
	if err != nil {
		// The user message, if stored above, stays stored: the turn happened
		// even though the reply failed.
		return nil, apperr.Upstream("chat completion failed", err)
	}

	if persist {
		assistantMsg := entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          reply,
			Role:          constant.ChatMessageRoleAssistant,
			ChatSessionId: session.Id,
			CreatedAt:     time.Now(),
		}
		if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
			return nil, err
		}
		if err := c.touchSession(ctx, uow, session); err != nil {
			return nil, err
		}
	}

	c.sweepAfterWrite(ctx, userId)

	return &dto.SendChatResponse{
		ChatSessionId: session.Id,
		Title:         session.Title,
		Chat:          req.Chat,
		Reply:         reply,
		Persisted:     persist,
	}, nil
}

func (c *chatService) AppendMessage(ctx context.Context, userId uuid.UUID, req *dto.AppendMessageRequest) (*dto.ChatMessageResponse, error) {
	if _, err := c.guardPersist(ctx, userId); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	message := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          req.Chat,
		Role:          req.Role,
		ChatSessionId: session.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}
	if err := c.touchSession(ctx, uow, session); err != nil {
		return nil, err
	}

	c.sweepAfterWrite(ctx, userId)

	return &dto.ChatMessageResponse{
		Id:        message.Id,
		Chat:      message.Chat,
		Role:      message.Role,
		CreatedAt: message.CreatedAt,
	}, nil
}

// UpdateSession edits session metadata only. Messages are immutable once
// stored; there is no message update path.
func (c *chatService) UpdateSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Archived != nil {
		session.Archived = *req.Archived
	}

	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return toSessionResponse(session), nil
}

func (c *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *chatService) ClearHistory(ctx context.Context, userId uuid.UUID) (*dto.ClearHistoryResponse, error) {
	deleted, err := c.sweeper.Purge(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.ClearHistoryResponse{DeletedSessions: deleted}, nil
}

// findOwnedSession loads the session and verifies ownership in one query.
// A session owned by someone else is indistinguishable from one that does
// not exist.
func (c *chatService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("chat session not found")
	}
	return session, nil
}

func (c *chatService) touchSession(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession) error {
	now := time.Now()
	session.UpdatedAt = &now
	return uow.ChatSessionRepository().Update(ctx, session)
}

func toSessionResponse(session *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		Archived:  session.Archived,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
