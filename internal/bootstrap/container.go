package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/repository/cache"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/llm/factory"
	"ai-chat-be/pkg/retention"
	retentionEvents "ai-chat-be/pkg/retention/events"
	"ai-chat-be/pkg/speech"
	"ai-chat-be/pkg/stats"

	pktNats "ai-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	SettingsController controller.ISettingsController
	SpeechController   controller.ISpeechController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	SweepScheduler  service.ISweepScheduler
	AuditService    service.IAuditService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	settingsCache := cache.NewSettingsCache(rdb)
	voiceCache := memory.NewVoiceCache()

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	speechProvider := speech.NewHTTPProvider(cfg.Speech.BaseURL)

	// 4. Retention Core
	eventPublisher := retentionEvents.NewNatsPublisher(natsPub, sysLogger)
	sweeper := retention.NewSweeper(uowFactory, eventPublisher, sysLogger)
	aggregator := stats.NewAggregator()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Topics.SweepUser, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Topics.SweepUser, sweeper)
	sweepScheduler := service.NewSweepScheduler(
		uowFactory,
		publisherService,
		time.Duration(cfg.App.SweepIntervalMinutes)*time.Minute,
		sysLogger,
	)
	auditService := service.NewAuditService(natsSub, auditLogger)

	settingsService := service.NewSettingsService(uowFactory, settingsCache, eventPublisher, sysLogger)
	chatService := service.NewChatService(uowFactory, settingsService, sweeper, llmProvider, sysLogger)
	statsService := service.NewStatsService(uowFactory, sweeper, aggregator, sysLogger)
	speechService := service.NewSpeechService(
		speechProvider,
		voiceCache,
		cfg.Speech.AudioDir,
		cfg.App.BaseURL,
		sysLogger,
	)

	// 6. Controllers
	authMiddleware := serverutils.NewJwtMiddleware(cfg.App.JWTSecret)

	return &Container{
		ChatController:     controller.NewChatController(chatService, statsService, authMiddleware),
		SettingsController: controller.NewSettingsController(settingsService, authMiddleware),
		SpeechController:   controller.NewSpeechController(speechService, authMiddleware),

		ConsumerService: consumerService,
		SweepScheduler:  sweepScheduler,
		AuditService:    auditService,
	}
}
