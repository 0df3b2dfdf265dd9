package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserSettingsResponse struct {
	Id                uuid.UUID  `json:"id"`
	SaveChatHistory   bool       `json:"save_chat_history"`
	AutoDeleteHistory bool       `json:"auto_delete_history"`
	AutoDeleteDays    int        `json:"auto_delete_days"`
	Theme             string     `json:"theme"`
	Language          string     `json:"language"`
	Notifications     bool       `json:"notifications"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// UpdateSettingsRequest carries a partial update. Nil fields are left as-is.
type UpdateSettingsRequest struct {
	SaveChatHistory   *bool   `json:"save_chat_history"`
	AutoDeleteHistory *bool   `json:"auto_delete_history"`
	AutoDeleteDays    *int    `json:"auto_delete_days" validate:"omitempty,min=1,max=365"`
	Theme             *string `json:"theme" validate:"omitempty,oneof=system light dark"`
	Language          *string `json:"language" validate:"omitempty,min=2,max=8"`
	Notifications     *bool   `json:"notifications"`
}
