package slackbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/slack-go/slack"

	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

const (
	// DefaultDirectMessagePause spaces out direct messages to stay under
	// the chat.postMessage rate limit.
	DefaultDirectMessagePause = 10 * time.Millisecond

	membersPageLimit = 500
)

type Messenger struct {
	api   *slack.Client
	pause time.Duration
}

func NewMessenger(api *slack.Client, pause time.Duration) *Messenger {
	return &Messenger{
		api:   api,
		pause: pause,
	}
}

// PostMessage posts text to a channel id, channel name or user id with link
// unfurling enabled.
func (m *Messenger) PostMessage(ctx context.Context, channel, text string) error {
	_, _, err := m.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionEnableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("chat.postMessage %s: %w", channel, err)
	}
	return nil
}

// DirectMessageSingleChannelGuests messages each single-channel guest who is
// a member of any of channels. A guest found in several channels is
// messaged once.
func (m *Messenger) DirectMessageSingleChannelGuests(ctx context.Context, text string, channels []string) (int, error) {
	guests, err := m.singleChannelGuests(ctx)
	if err != nil {
		return 0, err
	}
	if len(guests) == 0 {
		return 0, nil
	}

	sent := 0
	messaged := make(map[string]struct{})
	var errs []error

	for _, channel := range channels {
		if channel == "" {
			continue
		}

		members, err := m.channelMembers(ctx, channel)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, member := range members {
			if _, ok := guests[member]; !ok {
				continue
			}
			if _, ok := messaged[member]; ok {
				continue
			}
			messaged[member] = struct{}{}

			if err := m.PostMessage(ctx, member, text); err != nil {
				errs = append(errs, err)
			} else {
				sent++
			}

			if err := sleep(ctx, m.pause); err != nil {
				return sent, err
			}
		}
	}

	slog.DebugContext(ctx, "direct messaged single-channel guests",
		slog.Int("guest_count", len(guests)),
		slog.Int("sent_count", sent),
	)

	return sent, errors.Join(errs...)
}

func (m *Messenger) singleChannelGuests(ctx context.Context) (map[string]struct{}, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "slack.users_list", "users.list")
	defer span.End()

	users, err := m.api.GetUsersContext(ctx, slack.GetUsersOptionLimit(pageLimit))
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	tracing.RecordResult(span, nil)

	guests := make(map[string]struct{})
	for _, u := range users {
		if u.IsUltraRestricted && !u.Deleted {
			guests[u.ID] = struct{}{}
		}
	}
	return guests, nil
}

func (m *Messenger) channelMembers(ctx context.Context, channel string) ([]string, error) {
	var members []string
	cursor := ""
	for {
		page, next, err := m.api.GetUsersInConversationContext(ctx, &slack.GetUsersInConversationParameters{
			ChannelID: channel,
			Cursor:    cursor,
			Limit:     membersPageLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("conversations.members %s: %w", channel, err)
		}
		members = append(members, page...)

		if next == "" {
			return members, nil
		}
		cursor = next
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
