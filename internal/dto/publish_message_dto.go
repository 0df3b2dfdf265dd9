package dto

import "github.com/google/uuid"

// SweepUserMessage is the payload of a queued sweep job.
type SweepUserMessage struct {
	UserId uuid.UUID `json:"user_id"`
}
