package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
)

type ISweepScheduler interface {
	Run(ctx context.Context)
}

// sweepScheduler drives the interval pass. On each tick it enumerates users
// with auto-delete enabled and enqueues one sweep job per user, so the
// actual deletions happen on the consumer side one user at a time.
type sweepScheduler struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	interval         time.Duration
	logger           logger.ILogger
}

func NewSweepScheduler(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	interval time.Duration,
	logger logger.ILogger,
) ISweepScheduler {
	return &sweepScheduler{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		interval:         interval,
		logger:           logger,
	}
}

func (s *sweepScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueueAll(ctx)
		}
	}
}

func (s *sweepScheduler) enqueueAll(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserSettingsRepository().FindAllAutoDelete(ctx)
	if err != nil {
		s.logger.Error("RETENTION", "Failed to enumerate auto-delete users", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	enqueued := 0
	for _, settings := range users {
		payload, err := json.Marshal(dto.SweepUserMessage{UserId: settings.UserId})
		if err != nil {
			s.logger.Error("RETENTION", "Failed to encode sweep job", map[string]interface{}{
				"user_id": settings.UserId,
				"error":   err.Error(),
			})
			continue
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Error("RETENTION", "Failed to enqueue sweep job", map[string]interface{}{
				"user_id": settings.UserId,
				"error":   err.Error(),
			})
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		s.logger.Info("RETENTION", "Interval pass enqueued sweep jobs", map[string]interface{}{
			"users": enqueued,
		})
	}
}
