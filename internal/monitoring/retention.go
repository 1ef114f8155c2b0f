package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/taskdesk/taskdesk-be/internal/services"
)

// Pruner deletes audit events older than the retention window on a cron
// schedule.
type Pruner struct {
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	done      chan bool
}

// NewPruner creates a pruner firing on the given standard cron expression.
// An invalid expression is a construction error so a bad PRUNE_SCHEDULE is
// caught at startup rather than at 3am.
func NewPruner(eventSvc services.EventServiceProvider, cronExpr string, retention time.Duration) (*Pruner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Pruner{
		eventSvc:  eventSvc,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
	}, nil
}

// Run sleeps until each scheduled firing and prunes expired events.
func (p *Pruner) Run() {
	log.Info().Dur("retention", p.retention).Msg("Starting event retention pruner")
	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-p.done:
			timer.Stop()
			log.Info().Msg("Stopping event retention pruner")
			return
		case <-timer.C:
			p.prune()
		}
	}
}

// Stop halts the pruner.
func (p *Pruner) Stop() {
	p.done <- true
}

func (p *Pruner) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-p.retention)
	n, err := p.eventSvc.PruneBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune expired events")
		return
	}
	log.Info().Int64("pruned", n).Time("cutoff", cutoff).Msg("Pruned expired events")
}
