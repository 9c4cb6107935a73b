package config

import "errors"

func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.Slack == nil || cfg.Slack.BotToken == "" {
		errs = append(errs, ErrSlackTokenMissing)
	}
	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Calendar.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Workspace.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
