package contract

import (
	"context"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type UserSettingsRepository interface {
	Create(ctx context.Context, settings *entity.UserSettings) error
	Update(ctx context.Context, settings *entity.UserSettings) error
	// FindByUserId returns nil, nil when no record exists yet.
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
	// FindAllAutoDelete enumerates users with age-based expiry enabled, for the
	// interval-driven sweep pass.
	FindAllAutoDelete(ctx context.Context) ([]*entity.UserSettings, error)
}
