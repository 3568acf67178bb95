package ingest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrRefreshInProgress means a refresh run is already in flight; overlapping
// runs are skipped, not queued.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// refreshHour is the local hour the daily refresh fires.
const refreshHour = 3

type refresher interface {
	RefreshRecent(ctx context.Context) error
}

// Scheduler fires the daily refresh at 03:00 local time using a
// self-rescheduling timer. A single in-process guard keeps at most one run
// in flight; there is exactly one scheduler instance per deployment, so no
// distributed locking is needed.
type Scheduler struct {
	pipeline refresher
	logger   *logrus.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	timer   *time.Timer
}

func NewScheduler(pipeline refresher, logger *logrus.Logger) *Scheduler {
	return &Scheduler{pipeline: pipeline, logger: logger, now: time.Now}
}

// Start arms the timer for the next 03:00.
func (s *Scheduler) Start() {
	s.schedule()
}

// Stop cancels the pending timer. A run already in flight finishes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Scheduler) schedule() {
	next := nextRun(s.now())
	delay := next.Sub(s.now())

	s.mu.Lock()
	s.timer = time.AfterFunc(delay, s.tick)
	s.mu.Unlock()

	s.logger.WithField("next_run", next).Info("daily refresh scheduled")
}

// tick always reschedules, even when the run fails or is skipped.
func (s *Scheduler) tick() {
	defer s.schedule()

	err := s.RunNow(context.Background())
	switch {
	case errors.Is(err, ErrRefreshInProgress):
		s.logger.Warn("previous refresh still running, skipping this tick")
	case err != nil:
		s.logger.WithError(err).Error("daily refresh failed")
	}
}

// RunNow runs a refresh synchronously if none is in flight.
func (s *Scheduler) RunNow(ctx context.Context) error {
	if !s.acquire() {
		return ErrRefreshInProgress
	}
	defer s.release()
	return s.pipeline.RefreshRecent(ctx)
}

// RunAsync kicks a refresh in the background, reporting ErrRefreshInProgress
// immediately when one is already running. Used by the manual sync trigger.
func (s *Scheduler) RunAsync() error {
	if !s.acquire() {
		return ErrRefreshInProgress
	}
	go func() {
		defer s.release()
		if err := s.pipeline.RefreshRecent(context.Background()); err != nil {
			s.logger.WithError(err).Error("manual refresh failed")
		}
	}()
	return nil
}

func (s *Scheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// nextRun returns the next refreshHour o'clock strictly after now.
func nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), refreshHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
