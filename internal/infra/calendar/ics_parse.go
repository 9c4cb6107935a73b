package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

var (
	errMissingUID   = errors.New("missing UID")
	errMissingStart = errors.New("missing DTSTART")
)

// icsEvent is one VEVENT before recurrence expansion.
type icsEvent struct {
	uid          string
	summary      string
	description  *string
	location     *string
	start        time.Time
	end          time.Time
	allDay       bool
	cancelled    bool
	rrule        string
	exDates      []time.Time
	recurrenceID *time.Time
}

func parseICS(body []byte, loc *time.Location) ([]icsEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ics body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics body: %w", err)
	}

	vevents := cal.Events()
	events := make([]icsEvent, 0, len(vevents))
	for _, ve := range vevents {
		ev, err := parseVEvent(ve, loc)
		if err != nil {
			slog.Warn("skipping unreadable vevent",
				slog.String("uid", propValue(ve, ical.ComponentPropertyUniqueId)),
				slog.String("error", err.Error()),
			)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (icsEvent, error) {
	ev := icsEvent{
		uid:         propValue(ve, ical.ComponentPropertyUniqueId),
		summary:     propValue(ve, ical.ComponentPropertySummary),
		description: optionalProp(ve, ical.ComponentPropertyDescription),
		location:    optionalProp(ve, ical.ComponentPropertyLocation),
		rrule:       propValue(ve, ical.ComponentPropertyRrule),
		cancelled:   strings.EqualFold(propValue(ve, ical.ComponentPropertyStatus), "CANCELLED"),
	}
	if ev.uid == "" {
		return ev, errMissingUID
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return ev, errMissingStart
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return ev, fmt.Errorf("DTSTART: %w", err)
	}
	ev.start = floatingIn(startProp, start, loc)
	ev.allDay = isDateOnly(startProp)

	ev.end = ev.start
	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			ev.end = floatingIn(endProp, end, loc)
		}
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		ev.exDates = append(ev.exDates, parseTimeList(p, loc)...)
	}

	if ridProp := ve.GetProperty(ical.ComponentPropertyRecurrenceId); ridProp != nil {
		if rids := parseTimeList(ridProp, loc); len(rids) > 0 {
			ev.recurrenceID = &rids[0]
		}
	}

	return ev, nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

func optionalProp(ve *ical.VEvent, prop ical.ComponentProperty) *string {
	v := propValue(ve, prop)
	if v == "" {
		return nil
	}
	return &v
}

func isDateOnly(p *ical.IANAProperty) bool {
	if vs := p.ICalParameters["VALUE"]; len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func isFloating(p *ical.IANAProperty) bool {
	if tz := p.ICalParameters["TZID"]; len(tz) > 0 {
		return false
	}
	return !strings.HasSuffix(p.Value, "Z")
}

// floatingIn re-reads a time without zone information in loc.
func floatingIn(p *ical.IANAProperty, t time.Time, loc *time.Location) time.Time {
	if !isFloating(p) {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// parseTimeList reads EXDATE and RECURRENCE-ID values, which may be comma
// separated and carry their own TZID.
func parseTimeList(p *ical.IANAProperty, loc *time.Location) []time.Time {
	zone := loc
	if tz := p.ICalParameters["TZID"]; len(tz) == 1 {
		if l, err := time.LoadLocation(tz[0]); err == nil {
			zone = l
		}
	}

	var out []time.Time
	for _, part := range strings.Split(p.Value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if t, err := parseICSTime(part, zone); err == nil {
			out = append(out, t)
		}
	}
	return out
}

func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
