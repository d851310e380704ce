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
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// renderStatus renders an availability snapshot as a table.
func renderStatus(status availability.Status) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Base URL", "Available", "Endpoints", "Error"})

	available := "yes"
	if !status.Available {
		available = "no"
	}

	endpoints := "-"
	if len(status.AvailableEndpoints) > 0 {
		endpoints = fmt.Sprint(status.AvailableEndpoints)
	}

	message := status.ErrorMessage
	if message == "" {
		message = "-"
	}

	t.AppendRow(table.Row{status.BaseURL, available, endpoints, message})

	return t.Render()
}

// NewStatusCommand checks availability and discovers endpoints once.
func NewStatusCommand(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the API is reachable and which endpoints respond",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := o.NewValidator().Status(cmd.Context())

			out := cmd.OutOrStdout()

			if o.Output == "json" {
				if err := writeJSON(out, status); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, renderStatus(status))
			}

			if !status.Available {
				return fmt.Errorf("%w: %s", ErrUnavailable, status.ErrorMessage)
			}

			return nil
		},
	}
}
