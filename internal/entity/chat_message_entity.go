package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once created; there is no update path.
type ChatMessage struct {
	Id            uuid.UUID
	Chat          string
	Role          string
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
}
