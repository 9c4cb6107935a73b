package config

import "errors"

var (
	ErrRedisAddrMissing    = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidDeliveryTTL  = errors.New("DELIVERY_TTL must be a positive duration")
	ErrInvalidWindow       = errors.New("NEAR_WINDOW and FAR_WINDOW must be positive durations with NEAR_WINDOW < FAR_WINDOW")
	ErrSlackTokenMissing   = errors.New("SLACK_BOT_TOKEN is required")
	ErrCalendarMissing     = errors.New("either Google Calendar credentials or CALENDAR_ICS_URL is required")
	ErrInvalidTimezone     = errors.New("workspace timezone is not a valid IANA zone")
	ErrWorkspaceUnreadable = errors.New("workspace config could not be read")
)
