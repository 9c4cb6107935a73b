// Package description parses the structured text that event authors put in
// a calendar entry's description to configure its reminders.
//
// The description is line oriented:
//
//	meeting|test|other|none
//	alert|alert-single-channel|alert-main-channel|copy
//	#main-channel
//	#extra #channels | default      (optional)
//	agenda item, agenda item        (optional)
//	free-text notes                 (optional)
//
// Lines past the notes are ignored.
package description

import (
	"slices"
	"strings"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const defaultChannelsKeyword = "default"

// field positions
const (
	lineEventType = iota
	lineAlertType
	lineMainChannel
	lineAdditionalChannels
	lineAgenda
	lineNotes
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// RequiresChannelLookup reports whether parsing description will need a
// channel lookup, so callers can skip building one when it won't.
func RequiresChannelLookup(description string) bool {
	lines := strings.Split(description, "\n")

	alertType := domain.AlertType(strings.TrimSpace(lineAt(lines, lineAlertType)))
	if alertType == domain.AlertTypeAlertSingleChannel {
		return true
	}

	return strings.TrimSpace(lineAt(lines, lineAdditionalChannels)) == defaultChannelsKeyword
}

// Parse turns an event description into a NotificationConfig.
//
// It returns domain.ErrMissingDescription for a nil description,
// domain.ErrSuppressed for the "none" event type and a
// *domain.MalformedDescriptionError naming the offending field otherwise.
// lookup may be nil when RequiresChannelLookup is false.
func (p *Parser) Parse(summary string, description *string, lookup domain.ChannelLookup) (*domain.NotificationConfig, error) {
	if description == nil {
		return nil, domain.ErrMissingDescription
	}

	lines := strings.Split(*description, "\n")

	eventType, err := parseEventType(summary, lines)
	if err != nil {
		return nil, err
	}

	alertType, err := parseAlertType(summary, lines)
	if err != nil {
		return nil, err
	}

	mainToken, err := parseMainChannel(summary, lines)
	if err != nil {
		return nil, err
	}

	additional, usesDefaults := parseAdditionalChannels(lines, lookup)
	if usesDefaults && lookup == nil {
		return nil, domain.ErrLookupRequired
	}

	var main domain.Channel
	switch {
	case alertType == domain.AlertTypeAlertSingleChannel:
		if lookup == nil {
			return nil, domain.ErrLookupRequired
		}
		main, err = translateMain(summary, mainToken, lookup)
		if err != nil {
			return nil, err
		}
		additional = translateKnown(additional, lookup)
	case usesDefaults:
		main, err = translateMain(summary, mainToken, lookup)
		if err != nil {
			return nil, err
		}
	default:
		main = domain.ChannelName(mainToken)
	}

	additional = slices.DeleteFunc(additional, func(c domain.Channel) bool {
		return c.Value == main.Value
	})

	return &domain.NotificationConfig{
		Type:               eventType,
		AlertType:          alertType,
		MainChannel:        main,
		AdditionalChannels: additional,
		AgendaItems:        parseAgenda(lineAt(lines, lineAgenda)),
		Notes:              lineAt(lines, lineNotes),
	}, nil
}

func parseEventType(summary string, lines []string) (domain.EventType, error) {
	raw := strings.TrimSpace(lineAt(lines, lineEventType))
	eventType := domain.EventType(raw)

	if !eventType.IsValid() {
		return "", malformed(summary, domain.FieldEventType, raw, "expected meeting, test, other or none")
	}
	if eventType == domain.EventTypeNone {
		return "", domain.ErrSuppressed
	}

	return eventType, nil
}

func parseAlertType(summary string, lines []string) (domain.AlertType, error) {
	if len(lines) <= lineAlertType {
		return "", malformed(summary, domain.FieldAlertType, "", "line is missing")
	}

	raw := strings.TrimSpace(lines[lineAlertType])
	alertType := domain.AlertType(raw)
	if !alertType.IsValid() {
		return "", malformed(summary, domain.FieldAlertType, raw, "expected alert, alert-single-channel, alert-main-channel or copy")
	}

	return alertType, nil
}

func parseMainChannel(summary string, lines []string) (string, error) {
	if len(lines) <= lineMainChannel {
		return "", malformed(summary, domain.FieldMainChannel, "", "line is missing")
	}

	raw := lines[lineMainChannel]
	name := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if name == "" {
		return "", malformed(summary, domain.FieldMainChannel, raw, "channel is empty")
	}

	return name, nil
}

// parseAdditionalChannels returns the extra channels and whether they came
// from the workspace default list.
func parseAdditionalChannels(lines []string, lookup domain.ChannelLookup) ([]domain.Channel, bool) {
	raw := lineAt(lines, lineAdditionalChannels)

	if strings.TrimSpace(raw) == defaultChannelsKeyword {
		if lookup == nil {
			return nil, true
		}
		ids := lookup.DefaultChannelIDs()
		channels := make([]domain.Channel, 0, len(ids))
		for _, id := range ids {
			channels = append(channels, domain.ChannelID(id))
		}
		return channels, true
	}

	// strings.Fields splits on unicode whitespace, NBSP included.
	tokens := strings.Fields(strings.ReplaceAll(raw, "#", ""))
	channels := make([]domain.Channel, 0, len(tokens))
	for _, token := range tokens {
		channels = append(channels, domain.ChannelName(token))
	}

	return channels, false
}

func translateMain(summary, name string, lookup domain.ChannelLookup) (domain.Channel, error) {
	id, ok := lookup.IDByName(name)
	if !ok {
		return domain.Channel{}, malformed(summary, domain.FieldMainChannel, name, "channel not found in workspace")
	}
	return domain.ChannelID(id), nil
}

// translateKnown swaps every name the lookup knows for its id. Unknown
// values pass through untouched.
func translateKnown(channels []domain.Channel, lookup domain.ChannelLookup) []domain.Channel {
	out := make([]domain.Channel, 0, len(channels))
	for _, c := range channels {
		if c.IsID() {
			out = append(out, c)
			continue
		}
		if id, ok := lookup.IDByName(c.Value); ok {
			out = append(out, domain.ChannelID(id))
			continue
		}
		out = append(out, c)
	}
	return out
}

// parseAgenda keeps every comma-separated part, empty ones included, so an
// existing description renders the same bullets it always has. Only an
// absent or empty line means no agenda.
func parseAgenda(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.TrimSpace(part))
	}
	return items
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func malformed(summary string, field domain.DescriptionField, value, reason string) error {
	return &domain.MalformedDescriptionError{
		Summary: summary,
		Field:   field,
		Value:   value,
		Reason:  reason,
	}
}
