package timing

import (
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const (
	// DefaultNear is both the "starting soon" window and the tolerance
	// around Far.
	DefaultNear = config.DefaultNearWindow
	// DefaultFar is the advance notice distance.
	DefaultFar = config.DefaultFarWindow
)

type Classifier struct {
	near time.Duration
	far  time.Duration
}

func NewClassifier() *Classifier {
	return &Classifier{near: DefaultNear, far: DefaultFar}
}

func NewClassifierFromConfig(cfg *config.TimingConfig) *Classifier {
	if cfg == nil {
		return NewClassifier()
	}
	return &Classifier{near: cfg.Near, far: cfg.Far}
}

// Classify buckets the time remaining until an event starts. All bounds are
// exclusive, so an event starting exactly on a boundary is skipped.
func (c *Classifier) Classify(untilStart time.Duration) domain.Verdict {
	if untilStart > 0 && untilStart < c.near {
		return domain.VerdictSoon
	}

	if untilStart > c.far-c.near && untilStart < c.far+c.near {
		return domain.VerdictAdvance
	}

	return domain.VerdictSkip
}

func (c *Classifier) Near() time.Duration {
	return c.near
}

func (c *Classifier) Far() time.Duration {
	return c.far
}
