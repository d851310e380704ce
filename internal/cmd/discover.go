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
	"net/http"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
)

type discoveredEndpoint struct {
	Path    string `json:"path"`
	Method  string `json:"method"`
	Present bool   `json:"present"`
}

func discoveryResults(candidates, found []string) []discoveredEndpoint {
	results := make([]discoveredEndpoint, len(candidates))

	for i, candidate := range candidates {
		method := http.MethodGet
		if availability.IsAuthEndpoint(candidate) {
			method = http.MethodPost
		}

		results[i] = discoveredEndpoint{
			Path:    candidate,
			Method:  method,
			Present: slices.Contains(found, candidate),
		}
	}

	return results
}

func renderDiscovery(results []discoveredEndpoint) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Method", "Path", "Present"})

	var present int

	for _, r := range results {
		mark := "no"

		if r.Present {
			mark = "yes"
			present++
		}

		t.AppendRow(table.Row{r.Method, r.Path, mark})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d/%d", present, len(results))})

	return t.Render()
}

// NewDiscoverCommand probes every candidate path.
func NewDiscoverCommand(o *Options) *cobra.Command {
	var candidates []string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Probe candidate endpoints and list those the server knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			validator := availability.New(o.Config.BaseURL,
				availability.WithProbeTimeout(o.Config.TestTimeout),
				availability.WithHeaders(o.Config.AuthHeaders(o.Token)),
				availability.WithCandidates(candidates),
				availability.WithLogger(o.Logger),
			)

			found := validator.DiscoverEndpoints(cmd.Context())

			if validator.State() != availability.StateAvailable {
				return fmt.Errorf("%w: %s", ErrUnavailable, validator.ErrorMessage())
			}

			results := discoveryResults(candidates, found)

			if o.Output == "json" {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDiscovery(results))

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&candidates, "candidate", availability.DefaultCandidates, "candidate paths to probe, in order")

	return cmd
}
