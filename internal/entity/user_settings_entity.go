package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds the per-user retention policy plus presentation
// preferences. One record per user, created lazily on first access and
// never deleted.
type UserSettings struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	SaveChatHistory   bool
	AutoDeleteHistory bool
	// AutoDeleteDays is only meaningful while AutoDeleteHistory is true.
	AutoDeleteDays int
	Theme          string
	Language       string
	Notifications  bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
