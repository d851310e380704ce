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
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/monitor"
)

func renderReport(report *monitor.Report) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Monitoring report " + report.Timestamp.Format("2006-01-02 15:04:05"))

	available := "no"
	if report.APIStatus.Available {
		available = "yes"
	}

	t.AppendRow(table.Row{"Base URL", report.APIStatus.BaseURL})
	t.AppendRow(table.Row{"Available", available})
	t.AppendRow(table.Row{"Endpoints", len(report.APIStatus.AvailableEndpoints)})

	if report.APIStatus.ErrorMessage != "" {
		t.AppendRow(table.Row{"Error", report.APIStatus.ErrorMessage})
	}

	results := report.TestResults

	t.AppendSeparator()
	t.AppendRow(table.Row{"Test runs", fmt.Sprintf("%d (%d passed, %d failed)", results.Runs, results.Passes, results.Failures)})

	if results.LastRun != nil {
		t.AppendRow(table.Row{"Last run", results.LastRun.Format("2006-01-02 15:04:05") + " " + results.Duration})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"Checks", report.Monitoring.Checks})
	t.AppendRow(table.Row{"Uptime", report.Monitoring.Uptime})

	return t.Render()
}

// NewReportCommand writes a one off report, optionally running the suites
// first, or shows an existing one.
func NewReportCommand(o *Options) *cobra.Command {
	var (
		m        monitorOptions
		runTests bool
		show     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write or show a monitoring report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report *monitor.Report

			if show {
				r, err := monitor.ReadReport(m.config.ReportPath)
				if err != nil {
					return err
				}

				report = r
			} else {
				mon := m.build(o, nil)

				if runTests {
					mon.CheckStatus(cmd.Context())

					// The outcome is notified and recorded in the report.
					_ = mon.RunTests(cmd.Context())
				}

				r, err := mon.GenerateReport(cmd.Context())
				if err != nil {
					return err
				}

				report = r
			}

			if o.Output == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))

			return nil
		},
	}

	m.addFlags(cmd)
	cmd.Flags().BoolVar(&runTests, "run-tests", false, "run the test suites once before reporting")
	cmd.Flags().BoolVar(&show, "show", false, "show the report at --report-path instead of writing one")

	return cmd
}
