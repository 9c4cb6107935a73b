package slackbot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/slack-go/slack"
)

// fallbackEmoji is used when the workspace has no custom emoji.
const fallbackEmoji = ":thumbsup:"

type EmojiSupplier struct {
	api  *slack.Client
	intn func(n int) int
}

func NewEmojiSupplier(api *slack.Client) *EmojiSupplier {
	return &EmojiSupplier{
		api:  api,
		intn: rand.IntN,
	}
}

// RandomEmoji picks one of the workspace's custom emoji uniformly at random.
func (s *EmojiSupplier) RandomEmoji(ctx context.Context) (string, error) {
	emoji, err := s.api.GetEmojiContext(ctx)
	if err != nil {
		return "", fmt.Errorf("list emoji: %w", err)
	}

	if len(emoji) == 0 {
		return fallbackEmoji, nil
	}

	names := make([]string, 0, len(emoji))
	for name := range emoji {
		names = append(names, name)
	}
	slices.Sort(names)

	return ":" + names[s.intn(len(names))] + ":", nil
}
