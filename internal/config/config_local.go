//go:build !gcloud

package config

func (c *CalendarConfig) Validate() error {
	if c.UsesICS() || c.UsesRefreshToken() || c.CredentialsFile != "" {
		return nil
	}
	return ErrCalendarMissing
}
