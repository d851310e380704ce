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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
)

// TestResults summarises integration test runs since the monitor started.
type TestResults struct {
	Runs     int        `json:"runs"`
	Passes   int        `json:"passes"`
	Failures int        `json:"failures"`
	LastRun  *time.Time `json:"last_run"`
	Passed   *bool      `json:"passed"`
	ExitCode *int       `json:"exit_code,omitempty"`
	Duration string     `json:"duration,omitempty"`
}

// MonitoringStats describes the monitor itself.
type MonitoringStats struct {
	Checks         int    `json:"checks"`
	Uptime         string `json:"uptime"`
	ResponseTime   string `json:"response_time"`
	StatusInterval string `json:"status_interval"`
	TestInterval   string `json:"test_interval"`
	ReportAt       string `json:"report_at"`
}

// Report is the document written by GenerateReport.
type Report struct {
	Timestamp   time.Time           `json:"timestamp"`
	APIStatus   availability.Status `json:"api_status"`
	TestResults TestResults         `json:"test_results"`
	Monitoring  MonitoringStats     `json:"monitoring"`
}

// uptime formats the share of available checks, or n/a before the first one.
func uptime(available, total int) string {
	if total == 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", float64(available)*100/float64(total))
}

// WriteReport encodes the report as indented JSON, replacing the file atomically.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(path), ".report-*.json")
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	defer os.Remove(temp.Name())

	if _, err := temp.Write(append(data, '\n')); err != nil {
		temp.Close()

		return fmt.Errorf("writing report: %w", err)
	}

	if err := temp.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := os.Rename(temp.Name(), path); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	report := &Report{}

	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}

	return report, nil
}
