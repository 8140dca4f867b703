// Package scheduler wraps robfig/cron/v3 the way eargollo/ditto's own
// internal/scheduler does, for the one job mdu ever schedules: a periodic
// re-run of a root's traversal under `mdu watch`.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a single repeating job and tracks when it will next fire.
type Scheduler struct {
	mu       sync.RWMutex
	c        *cron.Cron
	entryID  cron.EntryID
	cronExpr string
}

// New creates a stopped Scheduler. Call Start to activate it.
func New() *Scheduler {
	return &Scheduler{c: cron.New()}
}

// SetJob replaces the current job with one firing on expr, calling fn each
// time. If the scheduler is already running, the new job takes effect
// immediately.
func (s *Scheduler) SetJob(expr string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.c.Remove(s.entryID)
	}

	id, err := s.c.AddFunc(expr, fn)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	s.entryID = id
	s.cronExpr = expr
	return nil
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop halts the cron loop, waiting for any in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}

// NextRunAt returns the next scheduled time, or the zero time if no job is
// set.
func (s *Scheduler) NextRunAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entryID == 0 {
		return time.Time{}
	}
	return s.c.Entry(s.entryID).Next
}

// CronExpr returns the currently scheduled expression.
func (s *Scheduler) CronExpr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cronExpr
}
