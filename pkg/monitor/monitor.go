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
	"slices"
	"sync"
	"time"

	"github.com/spjmurray/go-util/pkg/set"
	"go.uber.org/zap"

	"k8s.io/utils/ptr"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
)

const (
	JobStatus = "check-status"
	JobTests  = "run-tests"
	JobReport = "generate-report"

	DefaultReportPath = "monitoring_report.json"
)

// Config controls the monitoring schedule.
type Config struct {
	StatusInterval time.Duration
	TestInterval   time.Duration
	// ReportAt is the local "HH:MM" the daily report is generated.
	ReportAt   string
	Tick       time.Duration
	ReportPath string
}

func DefaultConfig() Config {
	return Config{
		StatusInterval: 5 * time.Minute,
		TestInterval:   time.Hour,
		ReportAt:       "09:00",
		Tick:           time.Minute,
		ReportPath:     DefaultReportPath,
	}
}

// Option configures a Monitor.
type Option func(*Monitor)

func WithConfig(config Config) Option {
	return func(m *Monitor) {
		m.config = config
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(m *Monitor) {
		m.notifier = notifier
	}
}

func WithRunner(runner Runner) Option {
	return func(m *Monitor) {
		m.runner = runner
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Monitor) {
		m.metrics = metrics
	}
}

// WithClock overrides wall time, used by the scheduler and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Monitor) {
		m.clock = clock
	}
}

// Monitor owns the monitoring state.  The check, test and report jobs are
// invoked from a single scheduler goroutine, the lock only protects readers
// such as the status server.
type Monitor struct {
	config   Config
	sources  SourceFactory
	notifier Notifier
	runner   Runner
	logger   *zap.Logger
	metrics  *Metrics
	clock    func() time.Time

	lock sync.RWMutex

	// lastAvailable is nil until the first check completes.
	lastAvailable   *bool
	lastStatus      *availability.Status
	checks          int
	availableChecks int
	responseTime    time.Duration
	results         TestResults
}

// New creates a monitor.  A fresh status source is requested from sources for
// every check.
func New(sources SourceFactory, options ...Option) *Monitor {
	m := &Monitor{
		config:  DefaultConfig(),
		sources: sources,
		runner:  &CommandRunner{},
		clock:   time.Now,
	}

	for _, o := range options {
		o(m)
	}

	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	if m.notifier == nil {
		m.notifier = &LogNotifier{Logger: m.logger}
	}

	if m.metrics == nil {
		m.metrics = noopMetrics()
	}

	if m.config.Tick <= 0 {
		m.config.Tick = time.Minute
	}

	if m.config.ReportPath == "" {
		m.config.ReportPath = DefaultReportPath
	}

	return m
}

func (m *Monitor) notify(ctx context.Context, message, detail string) {
	notification := Notification{
		Time:    m.clock(),
		Message: message,
		Detail:  detail,
	}

	if err := m.notifier.Notify(ctx, notification); err != nil {
		m.logger.Warn("failed to send notification", zap.String("message", message), zap.Error(err))
	}
}

func availableString(available bool) string {
	if available {
		return "available"
	}

	return "unavailable"
}

// CheckStatus takes a fresh snapshot and notifies on an availability edge.
// Neither the first check nor a steady state generates a notification.
func (m *Monitor) CheckStatus(ctx context.Context) bool {
	start := m.clock()

	status := m.sources().Status(ctx)

	elapsed := m.clock().Sub(start)
	current := status.IsAvailable()

	m.metrics.RecordCheck(ctx, current)

	m.lock.Lock()
	previous := m.lastAvailable
	previousStatus := m.lastStatus

	m.lastAvailable = ptr.To(current)
	m.lastStatus = &status
	m.checks++
	m.responseTime = elapsed

	if current {
		m.availableChecks++
	}
	m.lock.Unlock()

	if current {
		m.logger.Info("API status: available", zap.String("baseURL", status.BaseURL), zap.Strings("endpoints", status.AvailableEndpoints))
	} else {
		m.logger.Info("API status: unavailable", zap.String("baseURL", status.BaseURL), zap.String("reason", status.ErrorMessage))
	}

	if previous != nil && *previous != current {
		m.metrics.RecordTransition(ctx, current)
		m.notify(ctx, "API status changed: "+availableString(current), status.ErrorMessage)
	}

	if previousStatus != nil && previousStatus.Available && current {
		m.logDrift(previousStatus.AvailableEndpoints, status.AvailableEndpoints)
	}

	return current
}

// logDrift reports endpoints that appeared or disappeared between two
// available snapshots.
func (m *Monitor) logDrift(previous, current []string) {
	before := set.New[string](previous...)
	after := set.New[string](current...)

	appeared := slices.Sorted(after.Difference(before).All())
	disappeared := slices.Sorted(before.Difference(after).All())

	if len(appeared) == 0 && len(disappeared) == 0 {
		return
	}

	m.logger.Info("API endpoints changed", zap.Strings("appeared", appeared), zap.Strings("disappeared", disappeared))
}

// RunTests runs the integration suite and notifies the outcome.
func (m *Monitor) RunTests(ctx context.Context) error {
	m.logger.Info("starting API tests")

	start := m.clock()

	output, err := m.runner.Run(ctx)

	elapsed := m.clock().Sub(start)

	m.lock.Lock()
	m.results.Runs++
	m.results.LastRun = ptr.To(start)
	m.results.Passed = ptr.To(err == nil)
	m.results.Duration = elapsed.String()
	m.results.ExitCode = nil

	if err == nil {
		m.results.Passes++
	} else {
		m.results.Failures++
	}

	if runErr, ok := asRunError(err); ok {
		m.results.ExitCode = ptr.To(runErr.ExitCode)
	}
	m.lock.Unlock()

	switch {
	case err == nil:
		m.metrics.RecordTestRun(ctx, "passed")
		m.logger.Info("all API tests passed", zap.Duration("duration", elapsed))
		m.notify(ctx, "API tests passed", "")
	case IsRunError(err):
		m.metrics.RecordTestRun(ctx, "failed")
		m.logger.Warn("API tests failed", zap.Error(err))
		m.notify(ctx, "API tests failed", output)
	default:
		m.metrics.RecordTestRun(ctx, "error")
		m.logger.Error("error running API tests", zap.Error(err))
		m.notify(ctx, "API tests failed", err.Error())
	}

	return err
}

// Report builds a report from a fresh snapshot and the accumulated state.
func (m *Monitor) Report(ctx context.Context) *Report {
	status := m.sources().Status(ctx)

	m.lock.RLock()
	defer m.lock.RUnlock()

	return &Report{
		Timestamp:   m.clock(),
		APIStatus:   status,
		TestResults: m.results,
		Monitoring: MonitoringStats{
			Checks:         m.checks,
			Uptime:         uptime(m.availableChecks, m.checks),
			ResponseTime:   m.responseTime.String(),
			StatusInterval: m.config.StatusInterval.String(),
			TestInterval:   m.config.TestInterval.String(),
			ReportAt:       m.config.ReportAt,
		},
	}
}

// GenerateReport writes the report to the configured path.
func (m *Monitor) GenerateReport(ctx context.Context) (*Report, error) {
	report := m.Report(ctx)

	if err := WriteReport(m.config.ReportPath, report); err != nil {
		m.logger.Error("failed to generate report", zap.Error(err))

		return nil, err
	}

	m.logger.Info("monitoring report generated", zap.String("path", m.config.ReportPath))

	return report, nil
}

// LastStatus returns the most recent snapshot, if any check has completed.
func (m *Monitor) LastStatus() (availability.Status, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.lastStatus == nil {
		return availability.Status{}, false
	}

	return *m.lastStatus, true
}

// Scheduler registers the monitoring jobs on a new scheduler.
func (m *Monitor) Scheduler() (*Scheduler, error) {
	s := NewScheduler(m.clock, m.logger)

	if err := s.Every(JobStatus, m.config.StatusInterval, func(ctx context.Context) {
		m.CheckStatus(ctx)
	}); err != nil {
		return nil, err
	}

	if err := s.Every(JobTests, m.config.TestInterval, func(ctx context.Context) {
		_ = m.RunTests(ctx)
	}); err != nil {
		return nil, err
	}

	if err := s.DailyAt(JobReport, m.config.ReportAt, func(ctx context.Context) {
		_, _ = m.GenerateReport(ctx)
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// Start checks the status immediately and then runs the schedule until the
// context is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	s, err := m.Scheduler()
	if err != nil {
		return err
	}

	m.logger.Info("starting API monitoring",
		zap.Duration("statusInterval", m.config.StatusInterval),
		zap.Duration("testInterval", m.config.TestInterval),
		zap.String("reportAt", m.config.ReportAt))

	m.CheckStatus(ctx)

	return s.Run(ctx, m.config.Tick)
}
