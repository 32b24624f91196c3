package telemetry

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Retention periodically prunes old entries from a Logger on a cron
// schedule. The cap in RecordCall already bounds the sequence size; the
// sweeper additionally drops stale debug data so a rarely-used install does
// not keep months-old call logs around.
type Retention struct {
	logger    *Logger
	scheduler *cron.Cron
	entryID   cron.EntryID
	maxAge    time.Duration
}

// NewRetention creates a sweeper that removes entries older than maxAge.
func NewRetention(logger *Logger, maxAge time.Duration) *Retention {
	return &Retention{
		logger:    logger,
		scheduler: cron.New(),
		maxAge:    maxAge,
	}
}

// Start registers the sweep under the given cron spec (e.g. "0 3 * * *" for
// 3am daily) and starts the scheduler.
func (r *Retention) Start(spec string) error {
	id, err := r.scheduler.AddFunc(spec, r.sweep)
	if err != nil {
		return fmt.Errorf("failed to schedule retention sweep: %w", err)
	}
	r.entryID = id
	r.scheduler.Start()
	return nil
}

// Stop halts the scheduler. A sweep already in progress runs to completion.
func (r *Retention) Stop() {
	r.scheduler.Stop()
}

func (r *Retention) sweep() {
	removed, err := r.logger.PruneOlderThan(r.maxAge)
	if err != nil {
		log.Printf("[TELEMETRY] Retention sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[TELEMETRY] Retention sweep removed %d entries older than %v", removed, r.maxAge)
	}
}
