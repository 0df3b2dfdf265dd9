package events

import (
	"context"
	"time"

	"ai-chat-be/internal/pkg/logger"
	pkgEvents "ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for retention operations
type Publisher interface {
	PublishHistorySwept(ctx context.Context, userId uuid.UUID, deletedSessions int)
	PublishHistoryCleared(ctx context.Context, userId uuid.UUID, deletedSessions int)
	PublishSettingsUpdated(ctx context.Context, userId uuid.UUID, saveChatHistory, autoDeleteHistory bool, autoDeleteDays int)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishHistorySwept emits HISTORY_SWEPT after a sweep deleted at least one session
func (p *NatsPublisher) PublishHistorySwept(ctx context.Context, userId uuid.UUID, deletedSessions int) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "HISTORY_SWEPT",
		Data: map[string]interface{}{
			"user_id":          userId,
			"deleted_sessions": deletedSessions,
			"occurred_at":      now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("RETENTION", "Failed to publish HISTORY_SWEPT event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishHistoryCleared emits HISTORY_CLEARED after the explicit clear-all action
func (p *NatsPublisher) PublishHistoryCleared(ctx context.Context, userId uuid.UUID, deletedSessions int) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "HISTORY_CLEARED",
		Data: map[string]interface{}{
			"user_id":          userId,
			"deleted_sessions": deletedSessions,
			"occurred_at":      now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("RETENTION", "Failed to publish HISTORY_CLEARED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishSettingsUpdated emits SETTINGS_UPDATED when the retention policy changes
func (p *NatsPublisher) PublishSettingsUpdated(ctx context.Context, userId uuid.UUID, saveChatHistory, autoDeleteHistory bool, autoDeleteDays int) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "SETTINGS_UPDATED",
		Data: map[string]interface{}{
			"user_id":             userId,
			"save_chat_history":   saveChatHistory,
			"auto_delete_history": autoDeleteHistory,
			"auto_delete_days":    autoDeleteDays,
			"occurred_at":         now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("RETENTION", "Failed to publish SETTINGS_UPDATED event", map[string]interface{}{"error": err.Error()})
	}
}
