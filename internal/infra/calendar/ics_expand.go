package calendar

import (
	"log/slog"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const maxOccurrencesPerEvent = 500

// expandEvents turns parsed VEVENTs into concrete occurrences that have not
// ended by from and start before until, ordered by start. All-day and
// cancelled occurrences are dropped.
func expandEvents(events []icsEvent, from, until time.Time) []domain.Event {
	overrides := make(map[string][]icsEvent)
	bases := make([]icsEvent, 0, len(events))
	for _, ev := range events {
		if ev.recurrenceID != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
			continue
		}
		bases = append(bases, ev)
	}

	out := make([]domain.Event, 0)
	for _, base := range bases {
		if base.rrule == "" {
			if base.start.Before(until) {
				out = appendOccurrence(out, base, base.uid, from)
			}
			continue
		}

		duration := base.end.Sub(base.start)
		for _, start := range occurrences(base, from.Add(-duration), until) {
			inst := base
			inst.start = start
			inst.end = start.Add(duration)
			if ov, ok := findOverride(overrides[base.uid], start); ok {
				inst = ov
			}
			out = appendOccurrence(out, inst, instanceID(base.uid, start), from)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Event) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

func occurrences(ev icsEvent, after, before time.Time) []time.Time {
	rule, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		slog.Warn("skipping unreadable RRULE",
			slog.String("uid", ev.uid),
			slog.String("rrule", ev.rrule),
			slog.String("error", err.Error()),
		)
		return nil
	}
	rule.DTStart(ev.start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	starts := set.Between(after.In(ev.start.Location()), before.In(ev.start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		slog.Warn("truncating recurrence expansion",
			slog.String("uid", ev.uid),
			slog.Int("cap", maxOccurrencesPerEvent),
		)
		starts = starts[:maxOccurrencesPerEvent]
	}
	return starts
}

func findOverride(overrides []icsEvent, start time.Time) (icsEvent, bool) {
	for _, ov := range overrides {
		if ov.recurrenceID.Equal(start) {
			return ov, true
		}
	}
	return icsEvent{}, false
}

func appendOccurrence(out []domain.Event, ev icsEvent, id string, from time.Time) []domain.Event {
	if ev.cancelled || ev.allDay {
		return out
	}
	if ev.start.Before(from) && !ev.end.After(from) {
		return out
	}
	return append(out, domain.Event{
		ID:          id,
		Summary:     ev.summary,
		Description: ev.description,
		Location:    ev.location,
		Start:       ev.start,
	})
}

// instanceID mirrors the Calendar API's id for expanded instances.
func instanceID(uid string, start time.Time) string {
	return uid + "_" + start.UTC().Format("20060102T150405Z")
}
