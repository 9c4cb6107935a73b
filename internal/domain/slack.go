package domain

import "context"

//go:generate mockgen -source=slack.go -destination=slack_mock.go -package=domain

type EmojiSupplier interface {
	// RandomEmoji returns one emoji in chat markup, e.g. ":watermelon:".
	RandomEmoji(ctx context.Context) (string, error)
}

type ChannelDirectory interface {
	Lookup(ctx context.Context) (ChannelLookup, error)
	Refresh(ctx context.Context) (ChannelLookup, error)
}

type Messenger interface {
	PostMessage(ctx context.Context, channel, text string) error
	// DirectMessageSingleChannelGuests messages every single-channel guest
	// who is a member of any of channels and returns how many were sent.
	DirectMessageSingleChannelGuests(ctx context.Context, text string, channels []string) (int, error)
}
