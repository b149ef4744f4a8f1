// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// job is a registered job and its cron entry.
type job struct {
	schedule string
	fn       JobFunc
	entryID  cron.EntryID
	running  sync.Mutex
}

// Scheduler runs named jobs on cron schedules. A job never overlaps with
// itself; a tick that arrives while the previous run is active is skipped.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	jobs map[string]*job
}

// New creates a scheduler. Each run gets a context bounded by timeout.
func New(logger *slog.Logger, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		logger:  logger,
		timeout: timeout,
		jobs:    make(map[string]*job),
	}
}

// Add registers fn under name. An empty schedule leaves the job disabled.
func (s *Scheduler) Add(name, schedule string, fn JobFunc) error {
	if schedule == "" {
		s.logger.Info("scheduled job disabled", "job", name)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	j := &job{schedule: schedule, fn: fn}
	id, err := s.cron.AddFunc(schedule, func() { s.run(name, j) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", schedule, name, err)
	}
	j.entryID = id
	s.jobs[name] = j
	return nil
}

// RunNow executes a registered job immediately, bypassing its schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	if !s.run(name, j) {
		return fmt.Errorf("job %q is already running", name)
	}
	return nil
}

// Next returns the next scheduled run of a job.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(j.entryID).Next, true
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// run executes j unless it is already running, reporting whether it ran.
func (s *Scheduler) run(name string, j *job) bool {
	if !j.running.TryLock() {
		s.logger.Warn("skipping scheduled job, previous run still active", "job", name)
		return false
	}
	defer j.running.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := j.fn(ctx); err != nil {
		s.logger.Error("scheduled job failed", "job", name, "error", err, "duration", time.Since(start))
		return true
	}
	s.logger.Debug("scheduled job finished", "job", name, "duration", time.Since(start))
	return true
}
