package compose

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const (
	broadcastPrefix = "<!channel>\n"
	agendaBullet    = "\n    • "
	noAgenda        = "\nThere are currently no agenda items listed for this meeting."
)

type Composer struct {
	emoji      domain.EmojiSupplier
	attendance config.AttendanceConfig
	location   *time.Location
}

func NewComposer(emoji domain.EmojiSupplier, workspace *config.WorkspaceConfig) *Composer {
	if workspace == nil {
		workspace = config.DefaultWorkspaceConfig()
	}

	return &Composer{
		emoji:      emoji,
		attendance: workspace.Attendance,
		location:   workspace.Location(),
	}
}

// Compose renders the reminder text for event. untilStart is only used for
// the "in N minutes" header of a soon verdict.
func (c *Composer) Compose(ctx context.Context, event domain.Event, cfg *domain.NotificationConfig, verdict domain.Verdict, untilStart time.Duration) (string, error) {
	if !verdict.IsActionable() {
		return "", domain.ErrNotYetActionable
	}

	var b strings.Builder

	if cfg.AlertType.Broadcasts() {
		b.WriteString(broadcastPrefix)
	}

	b.WriteString("Reminder: *")
	b.WriteString(event.Summary)
	b.WriteString("* is occurring ")
	if verdict == domain.VerdictSoon {
		b.WriteString("in *" + strconv.FormatInt(ceilMinutes(untilStart), 10) + " minutes*")
	} else {
		b.WriteString("on *" + FormatStart(event.Start, c.location) + "*")
	}

	switch cfg.Type {
	case domain.EventTypeMeeting:
		if len(cfg.AgendaItems) == 0 {
			b.WriteString(noAgenda)
		} else {
			b.WriteString("\nPlease see the agenda items:")
			b.WriteString(RenderAgenda(cfg.AgendaItems))
		}
	case domain.EventTypeTest:
		b.WriteString("\nToday's test is located at: ")
		b.WriteString(event.LocationOr(c.attendance.LocationPlaceholder))
	}

	if cfg.Notes != "" {
		b.WriteString("\nNotes: ")
		b.WriteString(cfg.Notes)
	}

	if verdict == domain.VerdictSoon && cfg.Type == domain.EventTypeMeeting {
		b.WriteString(c.waysToAttend(event))
	} else {
		emoji, err := c.emoji.RandomEmoji(ctx)
		if err != nil {
			return "", fmt.Errorf("pick emoji: %w", err)
		}
		b.WriteString("\nReact with " + emoji + " if you're coming!")
	}

	return b.String(), nil
}

func (c *Composer) waysToAttend(event domain.Event) string {
	return "\nWays to attend:" +
		"\n      :office: In person @ " + event.LocationOr(c.attendance.LocationPlaceholder) +
		"\n      :globe_with_meridians: Online @ " + c.attendance.VideoLink +
		"\n      :calling: By phone " + c.attendance.Phone
}

// RenderAgenda renders items as an indented bullet list, one per line.
func RenderAgenda(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(agendaBullet)
		b.WriteString(item)
	}
	return b.String()
}

// FormatStart renders t like "March 3rd, 2025 at 7:30 PM" in loc.
func FormatStart(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return local.Format("January") + " " + ordinal(local.Day()) + local.Format(", 2006 at 3:04 PM")
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func ceilMinutes(d time.Duration) int64 {
	return int64(math.Ceil(float64(d) / float64(time.Minute)))
}
