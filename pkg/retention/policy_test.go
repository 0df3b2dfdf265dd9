package retention

import (
	"testing"
	"time"

	"ai-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanPersist(t *testing.T) {
	assert.True(t, CanPersist(&entity.UserSettings{SaveChatHistory: true}))
	assert.False(t, CanPersist(&entity.UserSettings{SaveChatHistory: false}))
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		autoDelete bool
		days       int
		age        time.Duration
		want       bool
	}{
		{
			name:       "auto delete disabled, ancient record",
			autoDelete: false,
			days:       7,
			age:        365 * 24 * time.Hour,
			want:       false,
		},
		{
			name:       "fresh record",
			autoDelete: true,
			days:       7,
			age:        time.Hour,
			want:       false,
		},
		{
			name:       "one second past threshold",
			autoDelete: true,
			days:       7,
			age:        7*24*time.Hour + time.Second,
			want:       true,
		},
		{
			name:       "age exactly at threshold stays",
			autoDelete: true,
			days:       7,
			age:        7 * 24 * time.Hour,
			want:       false,
		},
		{
			name:       "minimum threshold of one day",
			autoDelete: true,
			days:       1,
			age:        25 * time.Hour,
			want:       true,
		},
		{
			name:       "maximum threshold of one year",
			autoDelete: true,
			days:       365,
			age:        364 * 24 * time.Hour,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &entity.UserSettings{
				AutoDeleteHistory: tt.autoDelete,
				AutoDeleteDays:    tt.days,
			}
			got := IsExpired(settings, now.Add(-tt.age), now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	settings := &entity.UserSettings{
		AutoDeleteHistory: true,
		AutoDeleteDays:    30,
	}

	cutoff := Cutoff(settings, now)
	assert.Equal(t, now.Add(-30*24*time.Hour), cutoff)

	// Everything strictly before the cutoff is expired, the cutoff itself
	// is not.
	assert.True(t, IsExpired(settings, cutoff.Add(-time.Second), now))
	assert.False(t, IsExpired(settings, cutoff, now))
}
