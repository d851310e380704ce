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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/monitor"
)

// monitorOptions are the flags specific to the monitor and report commands.
type monitorOptions struct {
	config      monitor.Config
	testCommand []string
	testDir     string
	webhookURL  string
	listen      string
}

func (m *monitorOptions) addFlags(cmd *cobra.Command) {
	defaults := monitor.DefaultConfig()

	flags := cmd.Flags()
	flags.DurationVar(&m.config.StatusInterval, "status-interval", defaults.StatusInterval, "how often to check API status")
	flags.DurationVar(&m.config.TestInterval, "test-interval", defaults.TestInterval, "how often to run the test suites")
	flags.StringVar(&m.config.ReportAt, "report-at", defaults.ReportAt, "local time of day (HH:MM) to write the daily report")
	flags.DurationVar(&m.config.Tick, "tick", defaults.Tick, "scheduler resolution")
	flags.StringVar(&m.config.ReportPath, "report-path", defaults.ReportPath, "where the report is written")
	flags.StringSliceVar(&m.testCommand, "test-command", monitor.DefaultTestCommand, "command that runs the test suites")
	flags.StringVar(&m.testDir, "test-dir", "", "working directory for the test command")
	flags.StringVar(&m.webhookURL, "webhook-url", "", "also post notifications to this chat webhook")
}

// build wires a monitor from the resolved global options.
func (m *monitorOptions) build(o *Options, metrics *monitor.Metrics) *monitor.Monitor {
	notifier := monitor.MultiNotifier{
		&monitor.LogNotifier{Logger: o.Logger},
	}

	if m.webhookURL != "" {
		notifier = append(notifier, &monitor.WebhookNotifier{
			URL:    m.webhookURL,
			Client: &http.Client{Timeout: o.Config.TestTimeout},
		})
	}

	options := []monitor.Option{
		monitor.WithConfig(m.config),
		monitor.WithNotifier(notifier),
		monitor.WithRunner(&monitor.CommandRunner{Command: m.testCommand, Dir: m.testDir}),
		monitor.WithLogger(o.Logger),
	}

	if metrics != nil {
		options = append(options, monitor.WithMetrics(metrics))
	}

	return monitor.New(func() monitor.StatusSource {
		return o.NewValidator()
	}, options...)
}

// NewMonitorCommand runs the monitoring loop until interrupted.
func NewMonitorCommand(o *Options) *cobra.Command {
	m := &monitorOptions{}

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Continuously check the API, run the suites and write reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return m.run(ctx, o)
		},
	}

	m.addFlags(cmd)
	cmd.Flags().StringVar(&m.listen, "listen", ":8080", "status and metrics listen address, empty to disable")

	return cmd
}

func (m *monitorOptions) run(ctx context.Context, o *Options) error {
	telemetry, err := monitor.NewTelemetry()
	if err != nil {
		return err
	}

	mon := m.build(o, telemetry.Metrics)

	o.Logger.Info("service starting",
		zap.String("application", constants.Application),
		zap.String("version", constants.Version),
		zap.String("revision", constants.Revision),
		zap.String("baseURL", o.Config.BaseURL))

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return mon.Start(ctx)
	})

	if m.listen != "" {
		server := &http.Server{
			Addr:              m.listen,
			Handler:           mon.Handler(telemetry.Handler),
			ReadHeaderTimeout: 10 * time.Second,
		}

		group.Go(func() error {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status server: %w", err)
			}

			return nil
		})

		group.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		})
	}

	err = group.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if shutdownErr := telemetry.Shutdown(shutdownCtx); shutdownErr != nil {
		o.Logger.Warn("telemetry shutdown failed", zap.Error(shutdownErr))
	}

	o.Logger.Info("monitoring stopped")

	return err
}
