package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewUserSettingsRepository(db *gorm.DB) contract.UserSettingsRepository {
	return &UserSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *UserSettingsRepositoryImpl) Create(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.UserSettingsToModel(settings)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.UserSettingsToEntity(m)
	return nil
}

func (r *UserSettingsRepositoryImpl) Update(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.UserSettingsToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.UserSettingsToEntity(m)
	return nil
}

func (r *UserSettingsRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	var m model.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserSettingsToEntity(&m), nil
}

func (r *UserSettingsRepositoryImpl) FindAllAutoDelete(ctx context.Context) ([]*entity.UserSettings, error) {
	var models []*model.UserSettings
	if err := r.db.WithContext(ctx).Where("auto_delete_history = ?", true).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UserSettings, len(models))
	for i, m := range models {
		entities[i] = r.mapper.UserSettingsToEntity(m)
	}
	return entities, nil
}
