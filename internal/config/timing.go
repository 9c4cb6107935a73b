package config

import (
	"os"
	"time"
)

const (
	nearWindowEnv = "NEAR_WINDOW"
	farWindowEnv  = "FAR_WINDOW"

	DefaultNearWindow = 5 * time.Minute
	DefaultFarWindow  = 6 * time.Hour
)

// TimingConfig holds the two reminder windows. An event is "soon" when it
// starts within Near, and "advance" when it starts within Near of Far.
type TimingConfig struct {
	Near time.Duration
	Far  time.Duration
}

func LoadTimingConfig() (*TimingConfig, error) {
	cfg := &TimingConfig{
		Near: DefaultNearWindow,
		Far:  DefaultFarWindow,
	}

	if v := os.Getenv(nearWindowEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, ErrInvalidWindow
		}
		cfg.Near = parsed
	}

	if v := os.Getenv(farWindowEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, ErrInvalidWindow
		}
		cfg.Far = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *TimingConfig) Validate() error {
	if c.Near <= 0 || c.Far <= 0 || c.Near >= c.Far {
		return ErrInvalidWindow
	}
	return nil
}
