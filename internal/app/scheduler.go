package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// StartSchedule runs the pipeline on the configured cron expression until
// ctx is cancelled. Overlapping runs cannot occur: cron executes entries
// sequentially on one goroutine here, and a run that spans the next tick
// simply delays it.
func (a *App) StartSchedule(ctx context.Context) error {
	expr := a.Config.Schedule.Cron
	if expr == "" {
		return fmt.Errorf("no schedule configured")
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if _, err := a.Run(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("Scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	a.Logger.Info().Str("cron", expr).Msg("Scheduler started")
	c.Start()

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	a.Logger.Info().Msg("Scheduler stopped")

	return nil
}
