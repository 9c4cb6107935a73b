package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// DevDefaultChannelIDs is the default channel list of the development
// workspace. It includes the id of #general.
var DevDefaultChannelIDs = []string{
	"C0155MGT7NW", "C015BSR32E8", "C014J93U4JZ", "C0155TL4KKM",
	"C0155MHAHB4", "C014QV0F9AB", "C014YVDDLTG",
}

// DevChannelLookup returns a lookup resembling the development workspace.
func DevChannelLookup() *domain.ChannelMap {
	return domain.NewChannelMap(map[string]string{
		"general":    "C014J93U4JZ",
		"propulsion": "C0155MHAHB4",
		"random":     "C0155TL4KKM",
	}, DevDefaultChannelIDs)
}

func Ptr[T any](v T) *T {
	return &v
}

// NewEvent builds an event starting at start with the given description.
func NewEvent(id, summary, description string, start time.Time) domain.Event {
	return domain.Event{
		ID:          id,
		Summary:     summary,
		Description: Ptr(description),
		Start:       start,
	}
}

func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
}
