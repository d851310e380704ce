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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics records monitoring activity.
type Metrics struct {
	checks      metric.Int64Counter
	transitions metric.Int64Counter
	testRuns    metric.Int64Counter
}

// NewMetrics creates the instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	checks, err := meter.Int64Counter(
		"kiosk.monitor.checks",
		metric.WithDescription("Total number of API availability checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"kiosk.monitor.transitions",
		metric.WithDescription("Total number of API availability changes"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	testRuns, err := meter.Int64Counter(
		"kiosk.monitor.test_runs",
		metric.WithDescription("Total number of integration test runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		checks:      checks,
		transitions: transitions,
		testRuns:    testRuns,
	}, nil
}

func noopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("noop"))

	return m
}

func (m *Metrics) RecordCheck(ctx context.Context, available bool) {
	m.checks.Add(ctx, 1, metric.WithAttributes(attribute.Bool("available", available)))
}

func (m *Metrics) RecordTransition(ctx context.Context, available bool) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.Bool("available", available)))
}

func (m *Metrics) RecordTestRun(ctx context.Context, result string) {
	m.testRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
