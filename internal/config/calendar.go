package config

type CalendarConfig struct {
	CalendarID string

	// Service account or authorized-user JSON.
	CredentialsFile string

	// OAuth client with a long-lived refresh token.
	ClientID     string
	ClientSecret string
	RefreshToken string

	// ICSURL selects the ICS feed source instead of the Calendar API.
	ICSURL string
}

func (c *CalendarConfig) UsesICS() bool {
	return c.ICSURL != ""
}

func (c *CalendarConfig) UsesRefreshToken() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}
