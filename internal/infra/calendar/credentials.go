package calendar

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
)

// ClientOptions picks calendar credentials in order: OAuth refresh token,
// credentials file, application default credentials.
func ClientOptions(ctx context.Context, cfg *config.CalendarConfig) ([]option.ClientOption, error) {
	switch {
	case cfg.UsesRefreshToken():
		oauthConfig := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gcal.CalendarReadonlyScope},
		}
		ts := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
		return []option.ClientOption{option.WithTokenSource(ts)}, nil

	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, gcal.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil

	default:
		creds, err := google.FindDefaultCredentials(ctx, gcal.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil
	}
}
