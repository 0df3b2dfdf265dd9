package service

import (
	"context"

	"ai-chat-be/internal/pkg/logger"
	pkgEvents "ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"
)

type IAuditService interface {
	Start() error
}

// auditService records every retention-related event into its own append-only
// log file. The trail is deliberately isolated from the application log so
// deletions stay traceable even when the main log rotates away.
type auditService struct {
	subscriber  *pktNats.Subscriber
	auditLogger logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, auditLogger logger.ILogger) IAuditService {
	return &auditService{
		subscriber:  subscriber,
		auditLogger: auditLogger,
	}
}

func (s *auditService) Start() error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe("events.>", "retention-audit", s.handleEvent)
}

func (s *auditService) handleEvent(ctx context.Context, event pkgEvents.Event) error {
	s.auditLogger.Info("AUDIT", event.EventType(), event.Payload())
	return nil
}
