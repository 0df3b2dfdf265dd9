package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.ChatMessageRepository())
	assert.NotNil(t, uow.UserSettingsRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Session count: %d", count)
	})

	t.Run("Check Transactional Session Delete", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		session := &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     "integration-" + uuid.New().String(),
			CreatedAt: time.Now(),
		}
		err := uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		message := &entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          "integration message",
			Role:          "user",
			ChatSessionId: session.Id,
			CreatedAt:     time.Now(),
		}
		err = uow.ChatMessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		// Delete both inside one transaction
		txUow := uowFactory.NewUnitOfWork(ctx)
		err = txUow.Begin(ctx)
		assert.NoError(t, err)

		err = txUow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id)
		assert.NoError(t, err)
		err = txUow.ChatSessionRepository().Delete(ctx, session.Id)
		assert.NoError(t, err)

		err = txUow.Commit()
		assert.NoError(t, err)

		// Verify both are gone
		found, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
		assert.NoError(t, err)
		assert.Nil(t, found)

		remaining, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), remaining)
	})

	t.Run("Check Settings Repository Upsert Path", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		missing, err := uow.UserSettingsRepository().FindByUserId(ctx, userId)
		assert.NoError(t, err)
		assert.Nil(t, missing)

		settings := &entity.UserSettings{
			Id:              uuid.New(),
			UserId:          userId,
			SaveChatHistory: true,
			AutoDeleteDays:  30,
			Theme:           "system",
			Language:        "en",
			Notifications:   true,
			CreatedAt:       time.Now(),
		}
		err = uow.UserSettingsRepository().Create(ctx, settings)
		assert.NoError(t, err)

		stored, err := uow.UserSettingsRepository().FindByUserId(ctx, userId)
		assert.NoError(t, err)
		assert.NotNil(t, stored)
		assert.Equal(t, 30, stored.AutoDeleteDays)
	})
}
