package slackbot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slack-go/slack"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

// Directory builds the channel lookup from the workspace's public,
// non-archived channels. The lookup is built on first use and kept until
// Refresh.
type Directory struct {
	api        *slack.Client
	defaultIDs []string

	mu     sync.Mutex
	lookup *domain.ChannelMap
}

func NewDirectory(api *slack.Client, defaultIDs []string) *Directory {
	return &Directory{
		api:        api,
		defaultIDs: defaultIDs,
	}
}

func (d *Directory) Lookup(ctx context.Context) (domain.ChannelLookup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lookup != nil {
		return d.lookup, nil
	}
	return d.rebuild(ctx)
}

func (d *Directory) Refresh(ctx context.Context) (domain.ChannelLookup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rebuild(ctx)
}

// rebuild must be called with mu held. A failed rebuild keeps the previous
// lookup.
func (d *Directory) rebuild(ctx context.Context) (*domain.ChannelMap, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "slack.conversations_list", "conversations.list")
	defer span.End()

	nameToID := make(map[string]string)
	cursor := ""
	for {
		channels, next, err := d.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Types:           []string{"public_channel"},
			ExcludeArchived: true,
			Limit:           pageLimit,
			Cursor:          cursor,
		})
		if err != nil {
			tracing.RecordResult(span, err)
			return nil, fmt.Errorf("list conversations: %w", err)
		}

		for _, c := range channels {
			nameToID[c.Name] = c.ID
		}

		if next == "" {
			break
		}
		cursor = next
	}
	tracing.RecordResult(span, nil)

	d.lookup = domain.NewChannelMap(nameToID, d.defaultIDs)

	slog.InfoContext(ctx, "channel lookup built",
		slog.Int("channel_count", d.lookup.Len()),
	)

	return d.lookup, nil
}
