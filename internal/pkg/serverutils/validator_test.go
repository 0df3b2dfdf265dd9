package serverutils

import (
	"testing"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppendMessageRoleWhitelist(t *testing.T) {
	sessionId := uuid.New()

	tests := []struct {
		role    string
		wantErr bool
	}{
		{"user", false},
		{"assistant", false},
		{"system", true},
		{"tool", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run("role_"+tc.role, func(t *testing.T) {
			err := ValidateRequest(&dto.AppendMessageRequest{
				ChatSessionId: sessionId,
				Chat:          "hello",
				Role:          tc.role,
			})
			if tc.wantErr {
				assert.True(t, apperr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
