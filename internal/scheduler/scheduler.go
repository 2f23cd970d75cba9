// Package scheduler keeps track stats for popular tracks warm by rebuilding
// them on a cron schedule just under the cache TTL.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/trackstats"
)

// Scheduler manages the periodic track stats prewarm job.
type Scheduler struct {
	cron            *cron.Cron
	builder         *trackstats.Builder
	tracks          []string
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(builder *trackstats.Builder, tracks []string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		builder:         builder,
		tracks:          tracks,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// SchedulePrewarm schedules the track stats prewarm job
func (s *Scheduler) SchedulePrewarm(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tracks) == 0 {
		return fmt.Errorf("no tracks configured for prewarm")
	}

	id, err := s.cron.AddFunc(cronExpression, s.prewarm)
	if err != nil {
		return fmt.Errorf("failed to schedule prewarm job: %w", err)
	}
	s.jobIDs = append(s.jobIDs, id)

	s.logger.WithFields(logrus.Fields{
		"schedule": cronExpression,
		"tracks":   len(s.tracks),
	}).Info("Track stats prewarm scheduled")
	return nil
}

// Start begins executing scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started")
}

// Stop halts the scheduler, waiting for any running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning reports whether the scheduler is active
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// prewarm rebuilds stats for every configured track. Failures are per-track
// and non-fatal; a cold track simply misses the cache on its next request.
func (s *Scheduler) prewarm() {
	metrics.RecordCachePrewarm()
	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	warmed := 0
	for _, slug := range s.tracks {
		if summary := s.builder.Refresh(ctx, slug); summary != nil {
			warmed++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"warmed": warmed,
		"total":  len(s.tracks),
	}).Debug("Track stats prewarm complete")
}
