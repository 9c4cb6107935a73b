package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "EVENT_LIMIT", "WORKSPACE_CONFIG_PATH", "LOG_LEVEL", "NEAR_WINDOW", "FAR_WINDOW", "DELIVERY_TTL", "GOOGLE_CALENDAR_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.EventLimit != 4 {
		t.Errorf("expected event limit 4, got %d", cfg.EventLimit)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.Timing.Near != 5*time.Minute || cfg.Timing.Far != 6*time.Hour {
		t.Errorf("unexpected timing windows: %+v", cfg.Timing)
	}
	if cfg.Redis.DeliveryTTL != defaultDeliveryTTL {
		t.Errorf("expected delivery ttl %v, got %v", defaultDeliveryTTL, cfg.Redis.DeliveryTTL)
	}
	if cfg.Calendar.CalendarID != "primary" {
		t.Errorf("expected primary calendar, got %s", cfg.Calendar.CalendarID)
	}
	if cfg.Workspace.Timezone != "America/Toronto" {
		t.Errorf("expected America/Toronto, got %s", cfg.Workspace.Timezone)
	}
	if len(cfg.Workspace.DefaultChannelIDs) != 10 {
		t.Errorf("expected 10 default channels, got %d", len(cfg.Workspace.DefaultChannelIDs))
	}
}

func TestLoadEventLimitIgnoresInvalid(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "valid", value: "7", expected: 7},
		{name: "zero", value: "0", expected: 4},
		{name: "garbage", value: "many", expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EVENT_LIMIT", tt.value)
			t.Setenv("WORKSPACE_CONFIG_PATH", "")

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.EventLimit != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, cfg.EventLimit)
			}
		})
	}
}

func TestLoadTimingConfig(t *testing.T) {
	tests := []struct {
		name    string
		near    string
		far     string
		wantErr bool
	}{
		{name: "custom windows", near: "10m", far: "1h"},
		{name: "unparseable near", near: "soon", far: "", wantErr: true},
		{name: "near not below far", near: "2h", far: "1h", wantErr: true},
		{name: "negative far", near: "", far: "-1h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(nearWindowEnv, tt.near)
			t.Setenv(farWindowEnv, tt.far)

			cfg, err := LoadTimingConfig()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWindow) {
					t.Fatalf("expected ErrInvalidWindow, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Near != 10*time.Minute || cfg.Far != time.Hour {
				t.Errorf("unexpected windows: %+v", cfg)
			}
		})
	}
}

func TestLoadRedisConfigInvalid(t *testing.T) {
	t.Run("invalid db", func(t *testing.T) {
		t.Setenv(redisDBEnv, "one")
		if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
			t.Errorf("expected ErrInvalidRedisDB, got %v", err)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv(redisDBEnv, "")
		t.Setenv(deliveryTTLEnv, "0s")
		if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidDeliveryTTL) {
			t.Errorf("expected ErrInvalidDeliveryTTL, got %v", err)
		}
	})
}

func TestParseWorkspaceConfig(t *testing.T) {
	data := []byte(`
timezone: America/Vancouver
default_channel_ids: [C1, C2]
attendance:
  video_link: https://meet.example.org/team
channels:
  general: C1
  propulsion: C2
`)

	cfg, err := ParseWorkspaceConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timezone != "America/Vancouver" {
		t.Errorf("expected America/Vancouver, got %s", cfg.Timezone)
	}
	if len(cfg.DefaultChannelIDs) != 2 || cfg.DefaultChannelIDs[1] != "C2" {
		t.Errorf("unexpected default channels: %v", cfg.DefaultChannelIDs)
	}
	if cfg.Attendance.VideoLink != "https://meet.example.org/team" {
		t.Errorf("unexpected video link: %s", cfg.Attendance.VideoLink)
	}
	if cfg.Attendance.Phone != defaultPhone {
		t.Errorf("expected default phone, got %s", cfg.Attendance.Phone)
	}
	if cfg.Attendance.LocationPlaceholder != defaultLocationPlaceholder {
		t.Errorf("expected default placeholder, got %s", cfg.Attendance.LocationPlaceholder)
	}
	if cfg.Channels["propulsion"] != "C2" {
		t.Errorf("expected propulsion -> C2, got %q", cfg.Channels["propulsion"])
	}
}

func TestLoadWorkspaceConfigFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWorkspaceConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrWorkspaceUnreadable) {
			t.Errorf("expected ErrWorkspaceUnreadable, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workspace.yaml")
		if err := os.WriteFile(path, []byte("channels: [unterminated"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		_, err := LoadWorkspaceConfig(path)
		if !errors.Is(err, ErrWorkspaceUnreadable) {
			t.Errorf("expected ErrWorkspaceUnreadable, got %v", err)
		}
	})

	t.Run("empty default list is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workspace.yaml")
		if err := os.WriteFile(path, []byte("default_channel_ids: []\n"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		cfg, err := LoadWorkspaceConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.DefaultChannelIDs) != 0 {
			t.Errorf("expected no default channels, got %v", cfg.DefaultChannelIDs)
		}
	})
}

func TestWorkspaceConfigValidate(t *testing.T) {
	cfg := DefaultWorkspaceConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("expected ErrInvalidTimezone, got %v", err)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC fallback, got %v", cfg.Location())
	}
}

func TestValidateForRun(t *testing.T) {
	cfg := &Config{
		Redis:     &RedisConfig{Addr: "localhost:6379"},
		Slack:     &SlackConfig{},
		Calendar:  CalendarConfig{ICSURL: "https://example.org/cal.ics"},
		Workspace: DefaultWorkspaceConfig(),
	}

	err := ValidateForRun(cfg)
	if !errors.Is(err, ErrSlackTokenMissing) {
		t.Fatalf("expected ErrSlackTokenMissing, got %v", err)
	}

	cfg.Slack.BotToken = "xoxb-test"
	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
