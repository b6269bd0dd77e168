package domain

const (
	// SettingMessagingEnabled gates what the dashboard displays and solicits.
	// An absent row means enabled.
	SettingMessagingEnabled = "messaging_enabled"
)

// SettingsUpdate is the settings:updated event payload.
type SettingsUpdate struct {
	MessagingEnabled bool `json:"messagingEnabled"`
}
