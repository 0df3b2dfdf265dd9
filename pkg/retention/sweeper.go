package retention

import (
	"context"
	"time"

	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/retention/events"

	"github.com/google/uuid"
)

// Sweeper deletes sessions whose age exceeds the owner's auto-delete
// threshold. It is invoked opportunistically on every guarded write, before
// statistics reads, and from the interval pass; all callers share this one
// implementation. Sweeps are idempotent: deleting nothing is a valid outcome,
// and two concurrent sweeps for the same user can at worst race to delete the
// same session, which the store treats as a no-op.
type Sweeper struct {
	uowFactory unitofwork.RepositoryFactory
	events     events.Publisher
	logger     logger.ILogger
}

func NewSweeper(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, logger logger.ILogger) *Sweeper {
	return &Sweeper{
		uowFactory: uowFactory,
		events:     eventPublisher,
		logger:     logger,
	}
}

// Sweep removes the user's expired sessions and returns how many were
// deleted. No-op unless the user has auto-delete enabled. Each session is
// removed together with its messages in one transaction; if the context is
// cancelled midway, already-deleted sessions stay deleted and the remainder
// is picked up by the next pass.
func (s *Sweeper) Sweep(ctx context.Context, userId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.UserSettingsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return 0, err
	}
	if settings == nil || !settings.AutoDeleteHistory {
		return 0, nil
	}

	now := time.Now()
	expired, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedBefore{Cutoff: Cutoff(settings, now)},
	)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, session := range expired {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		// The range scan prefilters; the pure policy check stays authoritative.
		if !IsExpired(settings, session.CreatedAt, now) {
			continue
		}
		if err := s.deleteSession(ctx, uow, session.Id); err != nil {
			return deleted, err
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Info("RETENTION", "Sweep removed expired sessions", map[string]interface{}{
			"user_id":          userId,
			"deleted_sessions": deleted,
			"threshold_days":   settings.AutoDeleteDays,
		})
		s.events.PublishHistorySwept(ctx, userId, deleted)
	}

	return deleted, nil
}

// Purge deletes every session and message the user owns, regardless of
// policy. Backs the explicit "clear all history" action. Returns the number
// of sessions removed.
func (s *Sweeper) Purge(ctx context.Context, userId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ChatSessionRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return 0, err
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	// Messages first: their delete subquery joins through chat_sessions.
	if err := uow.ChatMessageRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return 0, err
	}
	if err := uow.ChatSessionRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("RETENTION", "History cleared", map[string]interface{}{
		"user_id":          userId,
		"deleted_sessions": count,
	})
	s.events.PublishHistoryCleared(ctx, userId, int(count))

	return int(count), nil
}

// deleteSession removes one session and its messages as one atomic unit.
func (s *Sweeper) deleteSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}
