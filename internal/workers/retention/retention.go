// Package retention deletes stored comparisons older than a configured age on
// a cron schedule.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"impactcompare/internal/ports"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule accepts a 5-field cron expression or a descriptor such as
// "@daily".
func ParseSchedule(expr string) (cron.Schedule, error) {
	sched, err := parser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", expr, err)
	}
	return sched, nil
}

// Purge removes comparisons created before now minus maxAge.
func Purge(ctx context.Context, store ports.ComparisonStore, maxAge time.Duration, now time.Time) (int64, error) {
	return store.PurgeBefore(ctx, now.Add(-maxAge))
}

// Start runs Purge on every tick of schedule until ctx ends. days <= 0
// disables retention.
func Start(ctx context.Context, store ports.ComparisonStore, schedule string, days int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if days <= 0 {
		logger.Info("retention disabled")
		return nil
	}
	sched, err := ParseSchedule(schedule)
	if err != nil {
		return err
	}
	maxAge := time.Duration(days) * 24 * time.Hour
	logger.Info("retention scheduled", "schedule", schedule, "days", days)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			n, err := Purge(ctx, store, maxAge, time.Now().UTC())
			if err != nil {
				logger.Error("retention purge failed", "error", err)
				continue
			}
			logger.Info("retention purge complete", "deleted", n, "next", sched.Next(time.Now()).Format(time.RFC3339))
		}
	}()
	return nil
}
