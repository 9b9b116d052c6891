package scheduler

import (
	"context"
	"fmt"
	"sync"

	"nba_analysis/internal/config"
	"nba_analysis/internal/ingest"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the nightly ingest: a cron job that pulls the
// previous night's completed games into the store. Overlapping runs
// are skipped; game ingestion is slow by design and a run can outlast
// its cron slot.
type Scheduler struct {
	cfg      *config.Config
	ingester *ingest.Ingester
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, ingester *ingest.Ingester) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		ingester: ingester,
		cron:     cron.New(),
	}
}

// Start registers the nightly ingest job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyIngestCron, func() {
		s.runIngest(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly ingest: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlyIngestCron).
		Msg("Nightly ingest scheduled")

	return nil
}

// Stop stops the cron loop. A run already in flight finishes on its
// own context.
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runIngest(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Warn().Msg("Previous ingest still running, skipping this slot")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Info().Msg("Running nightly ingest...")
	if err := s.ingester.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Nightly ingest failed")
	}
}
