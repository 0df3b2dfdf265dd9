package model

import (
	"time"

	"github.com/google/uuid"
)

type UserSettings struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SaveChatHistory   bool      `gorm:"not null;default:true"`
	AutoDeleteHistory bool      `gorm:"not null;default:false"`
	AutoDeleteDays    int       `gorm:"not null;default:30"`
	Theme             string    `gorm:"type:varchar(20);not null;default:'system'"`
	Language          string    `gorm:"type:varchar(10);not null;default:'en'"`
	Notifications     bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
