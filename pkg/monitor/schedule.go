/*
Copyright 2026 the Kiosk API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package monitor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context)

type job struct {
	name string
	fn   JobFunc
	next time.Time

	// interval is set for periodic jobs.
	interval time.Duration

	// hour and minute are set for daily jobs.
	daily  bool
	hour   int
	minute int
}

func (j *job) schedule(now time.Time) {
	if !j.daily {
		j.next = now.Add(j.interval)
		return
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, j.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	j.next = next
}

// Scheduler runs jobs cooperatively on the caller's goroutine.  It is not safe
// for concurrent use.
type Scheduler struct {
	jobs   []*job
	clock  func() time.Time
	logger *zap.Logger
}

// NewScheduler returns an empty scheduler.  A nil clock uses wall time.
func NewScheduler(clock func() time.Time, logger *zap.Logger) *Scheduler {
	if clock == nil {
		clock = time.Now
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		clock:  clock,
		logger: logger,
	}
}

// Every runs fn each interval, first after one interval has elapsed.
func (s *Scheduler) Every(name string, interval time.Duration, fn JobFunc) error {
	if interval <= 0 {
		return fmt.Errorf("%w: job %s has non-positive interval %v", ErrInvalidSchedule, name, interval)
	}

	j := &job{
		name:     name,
		fn:       fn,
		interval: interval,
	}

	j.schedule(s.clock())

	s.jobs = append(s.jobs, j)

	return nil
}

// DailyAt runs fn once a day at the given local "HH:MM".
func (s *Scheduler) DailyAt(name, at string, fn JobFunc) error {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return fmt.Errorf("%w: job %s time %q: %w", ErrInvalidSchedule, name, at, err)
	}

	j := &job{
		name:   name,
		fn:     fn,
		daily:  true,
		hour:   t.Hour(),
		minute: t.Minute(),
	}

	j.schedule(s.clock())

	s.jobs = append(s.jobs, j)

	return nil
}

// Next returns when the named job is due.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	for _, j := range s.jobs {
		if j.name == name {
			return j.next, true
		}
	}

	return time.Time{}, false
}

// RunPending runs every job due at now, earliest first, each to completion.
// Jobs are rescheduled relative to now.  It returns the number of jobs run.
func (s *Scheduler) RunPending(ctx context.Context, now time.Time) int {
	var due []*job

	for _, j := range s.jobs {
		if !j.next.After(now) {
			due = append(due, j)
		}
	}

	slices.SortStableFunc(due, func(a, b *job) int {
		return a.next.Compare(b.next)
	})

	var ran int

	for _, j := range due {
		if ctx.Err() != nil {
			break
		}

		s.logger.Debug("running job", zap.String("job", j.name))

		j.fn(ctx)
		j.schedule(now)

		ran++
	}

	return ran
}

// Run checks for due jobs every tick until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.RunPending(ctx, s.clock())
		}
	}
}
