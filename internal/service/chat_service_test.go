package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperr"
	"ai-chat-be/internal/repository/cache"
	"ai-chat-be/pkg/retention"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type chatFixture struct {
	store   *fakeStore
	pub     *recordingPublisher
	llm     *fakeLLM
	chat    IChatService
	setting ISettingsService
}

func newChatFixture() *chatFixture {
	store := newFakeStore()
	pub := &recordingPublisher{}
	llmFake := &fakeLLM{reply: "pong"}

	factory := &fakeFactory{store: store}
	settingsSvc := NewSettingsService(factory, cache.NewSettingsCache(nil), pub, nopLogger{})
	sweeper := retention.NewSweeper(factory, pub, nopLogger{})
	chatSvc := NewChatService(factory, settingsSvc, sweeper, llmFake, nopLogger{})

	return &chatFixture{
		store:   store,
		pub:     pub,
		llm:     llmFake,
		chat:    chatSvc,
		setting: settingsSvc,
	}
}

func (f *chatFixture) disableHistory(t *testing.T, userId uuid.UUID) {
	t.Helper()
	_, err := f.setting.Update(context.Background(), userId, &dto.UpdateSettingsRequest{
		SaveChatHistory: boolPtr(false),
	})
	assert.NoError(t, err)
}

func TestCreateSessionDefaultsTitle(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	res, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "Unnamed session", res.Title)
	assert.NotNil(t, f.store.sessions[res.Id])
}

func TestCreateSessionDeniedWhenHistoryDisabled(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()
	f.disableHistory(t, userId)

	_, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "x"})
	assert.True(t, apperr.IsHistoryDisabled(err))
	assert.Empty(t, f.store.sessions)
}

func TestAppendMessageDeniedWhenHistoryDisabled(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	_, err = f.chat.AppendMessage(context.Background(), userId, &dto.AppendMessageRequest{
		ChatSessionId: session.Id,
		Chat:          "m1",
		Role:          "user",
	})
	assert.NoError(t, err)

	f.disableHistory(t, userId)

	_, err = f.chat.AppendMessage(context.Background(), userId, &dto.AppendMessageRequest{
		ChatSessionId: session.Id,
		Chat:          "m2",
		Role:          "user",
	})
	assert.True(t, apperr.IsHistoryDisabled(err))

	// The earlier session and message survive the disable.
	assert.Len(t, f.store.sessions, 1)
	assert.Len(t, f.store.messages, 1)
}

func TestSendChatPersistsBothSidesOfTheTurn(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	res, err := f.chat.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          "ping",
	})
	assert.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, "pong", res.Reply)
	assert.Len(t, f.store.messages, 2)

	roles := map[string]int{}
	for _, m := range f.store.messages {
		roles[m.Role]++
	}
	assert.Equal(t, 1, roles["user"])
	assert.Equal(t, 1, roles["assistant"])
}

func TestSendChatStillRepliesWhenHistoryDisabled(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	f.disableHistory(t, userId)

	res, err := f.chat.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          "ping",
	})
	assert.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, "pong", res.Reply)
	assert.Equal(t, 1, f.llm.calls)
	// Nothing was stored for the ephemeral turn.
	assert.Empty(t, f.store.messages)
}

func TestSendChatUpstreamFailureKeepsUserMessage(t *testing.T) {
	f := newChatFixture()
	f.llm.err = errLLMDown
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	_, err = f.chat.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          "ping",
	})
	assert.True(t, apperr.IsUpstream(err))

	// The user's side of the turn was stored before the model failed.
	assert.Len(t, f.store.messages, 1)
}

func TestSendChatAgainstForeignSession(t *testing.T) {
	f := newChatFixture()
	owner := uuid.New()
	intruder := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), owner, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	_, err = f.chat.SendChat(context.Background(), intruder, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          "ping",
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetChatHistoryOrdersMessages(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	for _, chat := range []string{"first", "second", "third"} {
		_, err := f.chat.AppendMessage(context.Background(), userId, &dto.AppendMessageRequest{
			ChatSessionId: session.Id,
			Chat:          chat,
			Role:          "user",
		})
		assert.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	history, err := f.chat.GetChatHistory(context.Background(), userId, session.Id)
	assert.NoError(t, err)
	assert.Len(t, history.Messages, 3)
	assert.Equal(t, "first", history.Messages[0].Chat)
	assert.Equal(t, "third", history.Messages[2].Chat)
}

func TestGetAllSessionsHidesArchivedByDefault(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	visible, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "visible"})
	assert.NoError(t, err)
	archived, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "archived"})
	assert.NoError(t, err)

	_, err = f.chat.UpdateSession(context.Background(), userId, archived.Id, &dto.UpdateSessionRequest{
		Archived: boolPtr(true),
	})
	assert.NoError(t, err)

	defaultList, err := f.chat.GetAllSessions(context.Background(), userId, false)
	assert.NoError(t, err)
	assert.Len(t, defaultList, 1)
	assert.Equal(t, visible.Id, defaultList[0].Id)

	fullList, err := f.chat.GetAllSessions(context.Background(), userId, true)
	assert.NoError(t, err)
	assert.Len(t, fullList, 2)
}

func TestDeleteSessionCascadesToMessages(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)
	_, err = f.chat.AppendMessage(context.Background(), userId, &dto.AppendMessageRequest{
		ChatSessionId: session.Id,
		Chat:          "m1",
		Role:          "user",
	})
	assert.NoError(t, err)

	err = f.chat.DeleteSession(context.Background(), userId, session.Id)
	assert.NoError(t, err)
	assert.Empty(t, f.store.sessions)
	assert.Empty(t, f.store.messages)
}

func TestDeleteForeignSessionLooksNonexistent(t *testing.T) {
	f := newChatFixture()
	owner := uuid.New()
	intruder := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), owner, &dto.CreateSessionRequest{Title: "s1"})
	assert.NoError(t, err)

	err = f.chat.DeleteSession(context.Background(), intruder, session.Id)
	assert.True(t, apperr.IsNotFound(err))
	assert.Len(t, f.store.sessions, 1)
}

func TestClearHistoryPurgesEverything(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	for i := 0; i < 3; i++ {
		session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "s"})
		assert.NoError(t, err)
		_, err = f.chat.AppendMessage(context.Background(), userId, &dto.AppendMessageRequest{
			ChatSessionId: session.Id,
			Chat:          "m",
			Role:          "user",
		})
		assert.NoError(t, err)
	}

	res, err := f.chat.ClearHistory(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.DeletedSessions)
	assert.Empty(t, f.store.sessions)
	assert.Empty(t, f.store.messages)

	// Settings record remains.
	assert.NotNil(t, f.store.settings[userId])
	assert.Equal(t, []int{3}, f.pub.cleared)
}

func TestWritePathSweepsExpiredSessions(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	// Enable auto-delete with a 7 day threshold, then plant an old session.
	_, err := f.setting.Update(context.Background(), userId, &dto.UpdateSettingsRequest{
		AutoDeleteHistory: boolPtr(true),
		AutoDeleteDays:    intPtr(7),
	})
	assert.NoError(t, err)
	stale := seedSession(f.store, userId, 10*24*time.Hour, 2)

	// Any guarded write triggers the opportunistic pass.
	fresh, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "new"})
	assert.NoError(t, err)

	_, staleExists := f.store.sessions[stale.Id]
	assert.False(t, staleExists)
	_, freshExists := f.store.sessions[fresh.Id]
	assert.True(t, freshExists)
}

func TestUpdateSessionRenames(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	session, err := f.chat.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "old"})
	assert.NoError(t, err)

	res, err := f.chat.UpdateSession(context.Background(), userId, session.Id, &dto.UpdateSessionRequest{
		Title: strPtr("new"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "new", res.Title)
	assert.NotNil(t, res.UpdatedAt)

	var stored *entity.ChatSession = f.store.sessions[session.Id]
	assert.Equal(t, "new", stored.Title)
}
