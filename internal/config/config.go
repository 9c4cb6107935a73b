package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port          string
	LogLevel      slog.Level
	CheckCron     string
	EventLimit    int
	WorkspacePath string
	Redis         *RedisConfig
	Timing        *TimingConfig
	Slack         *SlackConfig
	Calendar      CalendarConfig
	Workspace     *WorkspaceConfig
}

const (
	defaultEventLimit = 4
)

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Four events covers two at each window edge.
	eventLimit := defaultEventLimit
	if v := os.Getenv("EVENT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			eventLimit = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	timingConfig, err := LoadTimingConfig()
	if err != nil {
		return nil, err
	}

	workspacePath := os.Getenv("WORKSPACE_CONFIG_PATH")
	workspace, err := LoadWorkspaceConfig(workspacePath)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          port,
		LogLevel:      parseLogLevel(os.Getenv("LOG_LEVEL")),
		CheckCron:     os.Getenv("CHECK_CRON"),
		EventLimit:    eventLimit,
		WorkspacePath: workspacePath,
		Redis:         redisConfig,
		Timing:        timingConfig,
		Slack:         LoadSlackConfig(),
		Calendar: CalendarConfig{
			CalendarID:      getEnvOrDefault("GOOGLE_CALENDAR_ID", "primary"),
			CredentialsFile: os.Getenv("GOOGLE_CALENDAR_CREDENTIALS"),
			ClientID:        os.Getenv("GOOGLE_CALENDAR_CLIENT_ID"),
			ClientSecret:    os.Getenv("GOOGLE_CALENDAR_CLIENT_SECRET"),
			RefreshToken:    os.Getenv("GOOGLE_CALENDAR_REFRESH_TOKEN"),
			ICSURL:          os.Getenv("CALENDAR_ICS_URL"),
		},
		Workspace: workspace,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
