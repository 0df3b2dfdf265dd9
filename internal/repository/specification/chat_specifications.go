package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByChatSessionIDs struct {
	ChatSessionIDs []uuid.UUID
}

func (s ByChatSessionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id IN ?", s.ChatSessionIDs)
}

// CreatedBefore keeps records strictly older than the cutoff. A record created
// exactly at the cutoff is excluded, which preserves the open-ended expiry
// boundary of the retention policy.
type CreatedBefore struct {
	Cutoff time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Cutoff)
}

// ExcludeArchived hides archived sessions from default listings. Archived
// sessions are still reachable by ID and still subject to retention sweeps.
type ExcludeArchived struct{}

func (s ExcludeArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("archived = ?", false)
}
