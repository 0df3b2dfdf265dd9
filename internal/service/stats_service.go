package service

import (
	"context"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/retention"
	"ai-chat-be/pkg/stats"

	"github.com/google/uuid"
)

type IStatsService interface {
	GetStats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error)
}

type statsService struct {
	uowFactory unitofwork.RepositoryFactory
	sweeper    *retention.Sweeper
	aggregator *stats.Aggregator
	logger     logger.ILogger
}

func NewStatsService(
	uowFactory unitofwork.RepositoryFactory,
	sweeper *retention.Sweeper,
	aggregator *stats.Aggregator,
	logger logger.ILogger,
) IStatsService {
	return &statsService{
		uowFactory: uowFactory,
		sweeper:    sweeper,
		aggregator: aggregator,
		logger:     logger,
	}
}

// GetStats sweeps first so the numbers never include sessions that are
// already past their expiry. A failed sweep degrades to pre-sweep numbers
// rather than failing the read.
func (s *statsService) GetStats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error) {
	if _, err := s.sweeper.Sweep(ctx, userId); err != nil {
		s.logger.Warn("STATS", "Pre-stats sweep failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.ComputeStats(ctx, uow, userId)
}
