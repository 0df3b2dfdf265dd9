package retention

import (
	"time"

	"ai-chat-be/internal/entity"
)

// Policy evaluation is pure on purpose: no I/O, no stored state, so the
// boundary behavior can be unit-tested exhaustively without a database.

// CanPersist reports whether new chat data may be stored for the user.
// Existing data is untouched by this check; disabling history only blocks
// future writes.
func CanPersist(settings *entity.UserSettings) bool {
	return settings.SaveChatHistory
}

// IsExpired reports whether a record created at createdAt has outlived the
// user's auto-delete threshold at the reference time now. A record aged
// exactly AutoDeleteDays is NOT expired; the inequality is strict so nothing
// is deleted at the precise boundary instant.
func IsExpired(settings *entity.UserSettings, createdAt, now time.Time) bool {
	if !settings.AutoDeleteHistory {
		return false
	}
	threshold := time.Duration(settings.AutoDeleteDays) * 24 * time.Hour
	return now.Sub(createdAt) > threshold
}

// Cutoff returns the creation-time cutoff matching IsExpired: records created
// strictly before it are expired. Used to prefilter the range scan.
func Cutoff(settings *entity.UserSettings, now time.Time) time.Time {
	return now.Add(-time.Duration(settings.AutoDeleteDays) * 24 * time.Hour)
}
