package stats

import (
	"context"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Aggregator summarizes a user's stored chat corpus. Read-only; callers that
// need post-sweep numbers run a sweep first.
type Aggregator struct{}

// NewAggregator creates a new stats aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// ComputeStats counts the user's sessions and messages and estimates the
// storage footprint. EstimatedBytes is a heuristic sum of message content
// and session title lengths, not an exact on-disk size.
func (a *Aggregator) ComputeStats(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.ChatStatsResponse, error) {
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	stats := &dto.ChatStatsResponse{
		SessionCount: len(sessions),
	}
	if len(sessions) == 0 {
		return stats, nil
	}

	sessionIds := make([]uuid.UUID, len(sessions))
	for i, s := range sessions {
		sessionIds[i] = s.Id
		stats.EstimatedBytes += int64(len(s.Title))
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionIDs{ChatSessionIDs: sessionIds},
	)
	if err != nil {
		return nil, err
	}

	stats.MessageCount = len(messages)
	for _, m := range messages {
		stats.EstimatedBytes += int64(len(m.Chat))
	}

	return stats, nil
}
