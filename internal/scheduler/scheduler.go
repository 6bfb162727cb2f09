// Package scheduler runs periodic game-log synchronization jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/runline/internal/gamelog"
	"github.com/yourusername/runline/internal/metrics"
	"github.com/yourusername/runline/internal/repository"
)

// syncWindow is how far back each scheduled sync reaches. Finals can be
// corrected a day or two after the fact, so a rolling window beats a strict
// high-water mark.
const syncWindow = 7 * 24 * time.Hour

// Scheduler manages scheduled game-log sync jobs.
type Scheduler struct {
	cron      *cron.Cron
	source    gamelog.Source
	repo      repository.GameLogRepository
	logger    *logrus.Logger
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a scheduler around a source and a repository.
func NewScheduler(source gamelog.Source, repo repository.GameLogRepository, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		source: source,
		repo:   repo,
		logger: logger,
	}
}

// ScheduleSync registers a sync job under the given cron expression.
func (s *Scheduler) ScheduleSync(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		if err := s.SyncOnce(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled game-log sync failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add sync job: %w", err)
	}
	s.logger.WithField("schedule", cronExpression).Info("Scheduled game-log sync")
	return nil
}

// SyncOnce fetches the trailing window and upserts every record. Individual
// upsert failures are logged and counted, not fatal.
func (s *Scheduler) SyncOnce(ctx context.Context) error {
	end := time.Now().UTC()
	start := end.Add(-syncWindow)

	games, err := s.source.FetchGameLogs(ctx, start, end)
	if err != nil {
		return fmt.Errorf("fetch from %s: %w", s.source.Name(), err)
	}

	stored, failed := 0, 0
	for i := range games {
		if err := s.repo.Upsert(ctx, &games[i]); err != nil {
			failed++
			s.logger.WithError(err).Warn("Failed to store game log")
			continue
		}
		stored++
	}
	metrics.GameLogSyncTotal.Add(float64(stored))

	s.logger.WithFields(logrus.Fields{
		"fetched": len(games),
		"stored":  stored,
		"failed":  failed,
	}).Info("Game-log sync complete")
	return nil
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
}

// Stop halts the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
}
