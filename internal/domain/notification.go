package domain

// NotificationConfig is the parsed form of an event description.
//
// MainChannel never appears in AdditionalChannels. Whether channel values
// are names or ids depends on AlertType and on the additional-channels
// field; each Channel carries its Kind.
type NotificationConfig struct {
	Type               EventType `json:"type"`
	AlertType          AlertType `json:"alert_type"`
	MainChannel        Channel   `json:"main_channel"`
	AdditionalChannels []Channel `json:"additional_channels"`
	AgendaItems        []string  `json:"agenda_items"`
	Notes              string    `json:"notes"`
}
