package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
