package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes a feed on a cron spec such as "@every 5m".
type Scheduler struct {
	cron *cron.Cron
	feed *Feed
	spec string
	log  *slog.Logger

	// initial tracks the refresh Start runs outside cron.
	initial sync.WaitGroup
}

// NewScheduler returns a scheduler for f. Nothing runs until Start.
func NewScheduler(f *Feed, spec string, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		feed: f,
		spec: spec,
		log:  log,
	}
}

// Start registers the refresh job, starts the scheduler and runs one
// refresh immediately so pages are populated without waiting for the
// first tick. Refreshes run under the feed's lifetime context.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("feed.Scheduler.Start: %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info("feed refresh scheduled", "spec", s.spec)

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.run()
	}()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.log.Info("feed refresh stopped")
}

func (s *Scheduler) run() {
	if s.feed.life.Err() != nil {
		return
	}
	s.feed.Refresh(context.Background())
	s.log.Debug("feed refreshed")
}
