package config

import "os"

type SlackConfig struct {
	BotToken string
	// LogChannel receives diagnostics for events with broken descriptions.
	LogChannel string
	// APIURL overrides the Slack Web API base URL. Tests and local stubs only.
	APIURL string
}

func LoadSlackConfig() *SlackConfig {
	return &SlackConfig{
		BotToken:   os.Getenv("SLACK_BOT_TOKEN"),
		LogChannel: os.Getenv("SLACK_LOG_CHANNEL"),
		APIURL:     os.Getenv("SLACK_API_URL"),
	}
}
