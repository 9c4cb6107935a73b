package domain

import (
	"strconv"
	"time"
)

type Delivery struct {
	EventID     string
	Summary     string
	Verdict     Verdict
	EventStart  time.Time
	MainChannel string
	DeliveredAt time.Time
}

func NewDelivery(event Event, verdict Verdict, mainChannel string) *Delivery {
	return &Delivery{
		EventID:     event.ID,
		Summary:     event.Summary,
		Verdict:     verdict,
		EventStart:  event.Start,
		MainChannel: mainChannel,
		DeliveredAt: time.Now().UTC(),
	}
}

func (d *Delivery) Key() string {
	return DeliveryKey(d.EventID, d.Verdict, d.EventStart)
}

// DeliveryKey identifies one reminder of one event occurrence. A rescheduled
// event gets a new key.
func DeliveryKey(eventID string, verdict Verdict, start time.Time) string {
	return eventID + ":" + verdict.String() + ":" + strconv.FormatInt(start.UTC().Unix(), 10)
}
