package config

import "time"

const (
	// Notifications
	NotificationListLimit = 50

	// Chat listing for officers
	ChatPageSizeDefault = 20
	ChatPageSizeMax     = 100

	// Offline push
	PushBodyLimit = 100

	// Device push tokens are re-registered by the app on login, so a stale
	// one may simply expire.
	PushTokenTTL = 90 * 24 * time.Hour
)
