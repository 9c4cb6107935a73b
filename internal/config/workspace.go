package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone            = "America/Toronto"
	defaultVideoLink           = "https://meet.jit.si/bay_area"
	defaultPhone               = "+1-437-538-3987 (2633 1815 39)"
	defaultLocationPlaceholder = "<insert funny location here>"
)

// software, recovery, propulsion, payload, general, electrical, airframe,
// liquid_engine, business, mechanical
var defaultChannelIDs = []string{
	"C01535M46SC", "C8VL7QCG0", "CCWGTJH7F", "C4H4NJG77", "C07MWEYPR",
	"C07MX0QDS", "C90E34QDD", "CV7S1E49Y", "C07MXA613", "C07MX5JDB",
}

// AttendanceConfig holds the "ways to attend" details printed in meeting
// reminders shortly before they start.
type AttendanceConfig struct {
	VideoLink string `yaml:"video_link" json:"video_link"`
	Phone     string `yaml:"phone" json:"phone"`
	// LocationPlaceholder is printed when an event has no location.
	LocationPlaceholder string `yaml:"location_placeholder" json:"location_placeholder"`
}

// WorkspaceConfig describes the chat workspace the reminders are sent to.
type WorkspaceConfig struct {
	// Timezone is the IANA zone used to render event start times.
	Timezone string `yaml:"timezone" json:"timezone"`

	// DefaultChannelIDs is the list used when a description asks for the
	// "default" additional channels.
	DefaultChannelIDs []string `yaml:"default_channel_ids" json:"default_channel_ids"`

	Attendance AttendanceConfig `yaml:"attendance" json:"attendance"`

	// Channels is an optional static name->id map. The server resolves
	// channels through Slack; remindctl uses this map to preview offline.
	Channels map[string]string `yaml:"channels,omitempty" json:"channels,omitempty"`
}

func DefaultWorkspaceConfig() *WorkspaceConfig {
	ids := make([]string, len(defaultChannelIDs))
	copy(ids, defaultChannelIDs)

	return &WorkspaceConfig{
		Timezone:          defaultTimezone,
		DefaultChannelIDs: ids,
		Attendance: AttendanceConfig{
			VideoLink:           defaultVideoLink,
			Phone:               defaultPhone,
			LocationPlaceholder: defaultLocationPlaceholder,
		},
		Channels: map[string]string{},
	}
}

// LoadWorkspaceConfig reads the YAML file at path. An empty path yields the
// built-in defaults; a missing file is an error.
func LoadWorkspaceConfig(path string) (*WorkspaceConfig, error) {
	if path == "" {
		return DefaultWorkspaceConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrWorkspaceUnreadable, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrWorkspaceUnreadable, err)
	}

	return ParseWorkspaceConfig(data)
}

func ParseWorkspaceConfig(data []byte) (*WorkspaceConfig, error) {
	var cfg WorkspaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkspaceUnreadable, err)
	}

	cfg.Normalize()
	return &cfg, nil
}

// Normalize fills zero values with defaults so partial files still work.
// An explicit empty default_channel_ids list is kept.
func (c *WorkspaceConfig) Normalize() {
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.DefaultChannelIDs == nil {
		c.DefaultChannelIDs = make([]string, len(defaultChannelIDs))
		copy(c.DefaultChannelIDs, defaultChannelIDs)
	}
	if c.Attendance.VideoLink == "" {
		c.Attendance.VideoLink = defaultVideoLink
	}
	if c.Attendance.Phone == "" {
		c.Attendance.Phone = defaultPhone
	}
	if c.Attendance.LocationPlaceholder == "" {
		c.Attendance.LocationPlaceholder = defaultLocationPlaceholder
	}
	if c.Channels == nil {
		c.Channels = map[string]string{}
	}
}

func (c *WorkspaceConfig) Validate() error {
	if c == nil {
		return nil
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return nil
}

// Location returns the configured zone, falling back to UTC when the zone
// database lacks it. Validate reports that case at startup.
func (c *WorkspaceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
