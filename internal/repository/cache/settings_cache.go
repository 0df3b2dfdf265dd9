package cache

import (
	"context"
	"encoding/json"
	"time"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "user_settings:"

// SettingsCache is a read-through cache for per-user settings records. Every
// guarded write resolves settings, so the hot path benefits from caching, but
// a user who disables history saving has to see the effect on their very next
// message. Updates therefore write through with Save, while read-side misses
// populate with SaveIfAbsent: a reader that loaded the row before an update
// committed cannot overwrite the fresher value. With a nil redis client every
// method degrades into a no-op and callers fall back to the database.
type SettingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSettingsCache(rdb *redis.Client) *SettingsCache {
	return &SettingsCache{
		rdb: rdb,
		ttl: 10 * time.Minute,
	}
}

func (c *SettingsCache) Get(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, settingsKeyPrefix+userId.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var settings entity.UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, false
	}
	return &settings, true
}

func (c *SettingsCache) Save(ctx context.Context, settings *entity.UserSettings) {
	if c.rdb == nil || settings == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, settingsKeyPrefix+settings.UserId.String(), data, c.ttl)
}

// SaveIfAbsent populates the cache only when no entry exists for the user.
// Read-side misses use this so a stale record cannot replace one written by
// a concurrent update.
func (c *SettingsCache) SaveIfAbsent(ctx context.Context, settings *entity.UserSettings) {
	if c.rdb == nil || settings == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	c.rdb.SetNX(ctx, settingsKeyPrefix+settings.UserId.String(), data, c.ttl)
}
