package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	DefaultSessionTitle = "Unnamed session"

	// Retention policy bounds for auto_delete_days. Out-of-range values are
	// rejected, never clamped.
	AutoDeleteDaysMin = 1
	AutoDeleteDaysMax = 365

	// Defaults for a lazily created settings record.
	DefaultSaveChatHistory   = true
	DefaultAutoDeleteHistory = false
	DefaultAutoDeleteDays    = 30
	DefaultTheme             = "system"
	DefaultLanguage          = "en"
	DefaultNotifications     = true
)
