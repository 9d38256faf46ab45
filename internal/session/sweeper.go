package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically closes idle sessions.
type Sweeper struct {
	cron    *cron.Cron
	service *Service
	logger  zerolog.Logger
}

// NewSweeper schedules Service.Sweep on the given cron schedule
// (standard five-field expression or a descriptor such as "@every 1m").
func NewSweeper(service *Service, schedule string, logger zerolog.Logger) (*Sweeper, error) {
	sw := &Sweeper{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}

	if _, err := sw.cron.AddFunc(schedule, sw.run); err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}

	return sw, nil
}

// Start begins running sweeps in the background.
func (sw *Sweeper) Start() {
	sw.cron.Start()
}

// Stop halts the schedule and waits for a running sweep, bounded by ctx.
func (sw *Sweeper) Stop(ctx context.Context) {
	select {
	case <-sw.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (sw *Sweeper) run() {
	start := time.Now()

	closed, err := sw.service.Sweep(context.Background(), start)
	if err != nil {
		sw.logger.Error().Err(err).Msg("session sweep failed")
		return
	}

	if closed > 0 {
		sw.logger.Info().
			Int("closed", closed).
			Dur("duration", time.Since(start)).
			Msg("idle sessions closed")
	}
}
