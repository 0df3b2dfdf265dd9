package mapper

import (
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

func (m *SettingsMapper) UserSettingsToEntity(s *model.UserSettings) *entity.UserSettings {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserSettings{
		Id:                s.Id,
		UserId:            s.UserId,
		SaveChatHistory:   s.SaveChatHistory,
		AutoDeleteHistory: s.AutoDeleteHistory,
		AutoDeleteDays:    s.AutoDeleteDays,
		Theme:             s.Theme,
		Language:          s.Language,
		Notifications:     s.Notifications,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *SettingsMapper) UserSettingsToModel(s *entity.UserSettings) *model.UserSettings {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.UserSettings{
		Id:                s.Id,
		UserId:            s.UserId,
		SaveChatHistory:   s.SaveChatHistory,
		AutoDeleteHistory: s.AutoDeleteHistory,
		AutoDeleteDays:    s.AutoDeleteDays,
		Theme:             s.Theme,
		Language:          s.Language,
		Notifications:     s.Notifications,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
