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

// Package monitor periodically probes the kiosk API, reports availability
// transitions, runs the integration tests and writes a daily report.
//
// Jobs are executed cooperatively by a single scheduler goroutine, a job always
// runs to completion before the next due job starts.
package monitor

import (
	"context"
	"time"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
)

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

// StatusSource yields a fully resolved availability snapshot.
type StatusSource interface {
	Status(ctx context.Context) availability.Status
}

// SourceFactory creates a fresh status source for each logical check, so every
// tick probes the API rather than reading a cached endpoint list.
type SourceFactory func() StatusSource

// Notification is a message emitted on availability changes and test runs.
type Notification struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// Runner executes the integration test suite.  A nil error means every test
// passed, a *RunError means the suite ran and failed.
type Runner interface {
	Run(ctx context.Context) (string, error)
}
