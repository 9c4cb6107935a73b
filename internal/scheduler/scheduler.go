// Package scheduler triggers reminder checks on a cron schedule when the
// service runs without an external trigger.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	rcron "github.com/robfig/cron/v3"
)

const defaultRunTimeout = 50 * time.Second

// CheckFunc runs one reminder check.
type CheckFunc func(ctx context.Context, now time.Time, runID string) error

type Scheduler struct {
	cron    *rcron.Cron
	check   CheckFunc
	timeout time.Duration
}

// New registers check under spec, a standard five-field expression or a
// descriptor such as "@every 1m". Overlapping runs are skipped.
func New(spec string, loc *time.Location, check CheckFunc) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	logger := slogCronLogger{}
	s := &Scheduler{
		cron: rcron.New(
			rcron.WithLocation(loc),
			rcron.WithLogger(logger),
			rcron.WithChain(rcron.Recover(logger), rcron.SkipIfStillRunning(logger)),
		),
		check:   check,
		timeout: defaultRunTimeout,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid check schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start runs the schedule until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	slog.InfoContext(ctx, "reminder scheduler started",
		slog.Time("next_run", s.NextRun()),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop halts the schedule and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	runID := "cron-" + uuid.New().String()
	if err := s.check(ctx, time.Now(), runID); err != nil {
		slog.ErrorContext(ctx, "scheduled reminder check failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}
}

type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
