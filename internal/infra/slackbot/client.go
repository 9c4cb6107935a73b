// Package slackbot adapts the Slack Web API to the reminder domain: the
// channel directory, the emoji supplier and the messenger.
package slackbot

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
)

const (
	defaultHTTPTimeout = 15 * time.Second

	// conversations.list and users.list paginate reliably below 1000.
	pageLimit = 900
)

func NewClient(cfg *config.SlackConfig) *slack.Client {
	opts := []slack.Option{
		slack.OptionHTTPClient(&http.Client{Timeout: defaultHTTPTimeout}),
	}
	if cfg.APIURL != "" {
		apiURL := cfg.APIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}

	return slack.New(cfg.BotToken, opts...)
}

// AuthCheck verifies the bot token with auth.test.
func AuthCheck(api *slack.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := api.AuthTestContext(ctx)
		return err
	}
}
