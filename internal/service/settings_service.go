package service

import (
	"context"
	"fmt"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperr"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/cache"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/retention/events"

	"github.com/google/uuid"
)

type ISettingsService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.UserSettingsResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.UserSettingsResponse, error)
	// Resolve returns the user's settings entity, creating the default record on first access.
	Resolve(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
}

// ISettingsCache is the cache surface the settings service depends on,
// satisfied by cache.SettingsCache.
type ISettingsCache interface {
	Get(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, bool)
	Save(ctx context.Context, settings *entity.UserSettings)
	SaveIfAbsent(ctx context.Context, settings *entity.UserSettings)
}

var _ ISettingsCache = (*cache.SettingsCache)(nil)

type settingsService struct {
	uowFactory     unitofwork.RepositoryFactory
	settingsCache  ISettingsCache
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewSettingsService(
	uowFactory unitofwork.RepositoryFactory,
	settingsCache ISettingsCache,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) ISettingsService {
	return &settingsService{
		uowFactory:     uowFactory,
		settingsCache:  settingsCache,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *settingsService) Get(ctx context.Context, userId uuid.UUID) (*dto.UserSettingsResponse, error) {
	settings, err := s.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// Resolve reads through the cache. A miss falls back to the database, and a
// missing record is lazily created with defaults so every user always has an
// effective policy.
func (s *settingsService) Resolve(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	if cached, found := s.settingsCache.Get(ctx, userId); found {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.UserSettingsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.UserSettings{
			Id:                uuid.New(),
			UserId:            userId,
			SaveChatHistory:   constant.DefaultSaveChatHistory,
			AutoDeleteHistory: constant.DefaultAutoDeleteHistory,
			AutoDeleteDays:    constant.DefaultAutoDeleteDays,
			Theme:             constant.DefaultTheme,
			Language:          constant.DefaultLanguage,
			Notifications:     constant.DefaultNotifications,
			CreatedAt:         time.Now(),
		}
		if err := uow.UserSettingsRepository().Create(ctx, settings); err != nil {
			return nil, err
		}
		s.logger.Info("SETTINGS", "Created default settings record", map[string]interface{}{
			"user_id": userId,
		})
	}

	// Populate-if-absent only: a Save here could re-cache a row read before a
	// concurrent update committed, pinning stale policy for the whole TTL.
	s.settingsCache.SaveIfAbsent(ctx, settings)
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.UserSettingsResponse, error) {
	settings, err := s.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}

	retentionChanged := false
	if req.SaveChatHistory != nil && *req.SaveChatHistory != settings.SaveChatHistory {
		settings.SaveChatHistory = *req.SaveChatHistory
		retentionChanged = true
	}
	if req.AutoDeleteHistory != nil && *req.AutoDeleteHistory != settings.AutoDeleteHistory {
		settings.AutoDeleteHistory = *req.AutoDeleteHistory
		retentionChanged = true
	}
	if req.AutoDeleteDays != nil {
		if *req.AutoDeleteDays < constant.AutoDeleteDaysMin || *req.AutoDeleteDays > constant.AutoDeleteDaysMax {
			return nil, apperr.Validation(fmt.Sprintf(
				"auto_delete_days must be between %d and %d",
				constant.AutoDeleteDaysMin, constant.AutoDeleteDaysMax,
			))
		}
		if *req.AutoDeleteDays != settings.AutoDeleteDays {
			settings.AutoDeleteDays = *req.AutoDeleteDays
			retentionChanged = true
		}
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}

	now := time.Now()
	settings.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserSettingsRepository().Update(ctx, settings); err != nil {
		return nil, err
	}

	// Write through after the commit. Resolve only populates when the key is
	// absent, so a racing read-side populate cannot clobber this value.
	s.settingsCache.Save(ctx, settings)

	if retentionChanged {
		s.eventPublisher.PublishSettingsUpdated(ctx, userId,
			settings.SaveChatHistory, settings.AutoDeleteHistory, settings.AutoDeleteDays)
	}

	return toSettingsResponse(settings), nil
}

func toSettingsResponse(settings *entity.UserSettings) *dto.UserSettingsResponse {
	return &dto.UserSettingsResponse{
		Id:                settings.Id,
		SaveChatHistory:   settings.SaveChatHistory,
		AutoDeleteHistory: settings.AutoDeleteHistory,
		AutoDeleteDays:    settings.AutoDeleteDays,
		Theme:             settings.Theme,
		Language:          settings.Language,
		Notifications:     settings.Notifications,
		CreatedAt:         settings.CreatedAt,
		UpdatedAt:         settings.UpdatedAt,
	}
}
