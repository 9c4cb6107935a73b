package domain

// EventType is the first field of an event description and selects the
// body of the reminder.
type EventType string

const (
	EventTypeMeeting EventType = "meeting"
	EventTypeTest    EventType = "test"
	EventTypeOther   EventType = "other"
	EventTypeNone    EventType = "none"
)

func (t EventType) String() string {
	return string(t)
}

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeMeeting, EventTypeTest, EventTypeOther, EventTypeNone:
		return true
	}
	return false
}

// AlertType controls who a reminder is broadcast to.
type AlertType string

const (
	AlertTypeAlert              AlertType = "alert"
	AlertTypeAlertSingleChannel AlertType = "alert-single-channel"
	AlertTypeAlertMainChannel   AlertType = "alert-main-channel"
	AlertTypeCopy               AlertType = "copy"
)

func (a AlertType) String() string {
	return string(a)
}

func (a AlertType) IsValid() bool {
	switch a {
	case AlertTypeAlert, AlertTypeAlertSingleChannel, AlertTypeAlertMainChannel, AlertTypeCopy:
		return true
	}
	return false
}

// Broadcasts reports whether the composed message mentions the whole channel.
func (a AlertType) Broadcasts() bool {
	return a == AlertTypeAlert || a == AlertTypeAlertSingleChannel
}
