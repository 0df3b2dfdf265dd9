package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type CreateSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Archived  bool       `json:"archived"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type UpdateSessionRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Archived *bool   `json:"archived"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type GetChatHistoryResponse struct {
	ChatSessionId uuid.UUID             `json:"chat_session_id"`
	Title         string                `json:"title"`
	Messages      []ChatMessageResponse `json:"messages"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Chat          string    `json:"chat" validate:"required"`
}

type SendChatResponse struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Title         string    `json:"title"`
	Chat          string    `json:"chat"`
	Reply         string    `json:"reply"`
	Persisted     bool      `json:"persisted"`
}

type AppendMessageRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required"`
	Role          string    `json:"role" validate:"required,oneof=user assistant"`
}

type ChatStatsResponse struct {
	SessionCount   int   `json:"session_count"`
	MessageCount   int   `json:"message_count"`
	EstimatedBytes int64 `json:"estimated_bytes"`
}

type ClearHistoryResponse struct {
	DeletedSessions int `json:"deleted_sessions"`
}
