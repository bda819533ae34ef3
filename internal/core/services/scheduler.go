package services

import (
	"context"
	"sync"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driving"
	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler re-runs the reconciler at a fixed interval for serve mode.
// Runs execute inline in the loop, so invocations are serialised by
// construction and never overlap.
type Scheduler struct {
	interval   time.Duration
	reconciler driving.Reconciler

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler that triggers a run every interval.
func NewScheduler(interval time.Duration, reconciler driving.Reconciler) *Scheduler {
	return &Scheduler{
		interval:   interval,
		reconciler: reconciler,
	}
}

// Start runs immediately, then on every tick. It blocks until the
// context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.wg.Add(1)
	defer s.wg.Done()

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// Stop gracefully shuts down the loop, waiting for an in-flight run.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// runOnce executes a single run, logging rather than propagating
// failures so one bad run never kills the loop.
func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.reconciler.Run(ctx)
	if err != nil {
		logger.Warn("Scheduled run failed: %v", err)
		return
	}
	logger.Info("Scheduled run: %d created, %d updated, %d skipped, %d failed",
		report.Created, report.Updated, report.Skipped, report.Failed)
}
