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

package availability

import (
	"encoding/json"
	"strings"
)

// State is the tri-state availability of the remote API.
type State int

const (
	// StateUnknown is only observed before the first probe.
	StateUnknown State = iota
	// StateAvailable means the last root probe answered 200 or 404.
	StateAvailable
	// StateUnavailable means the last root probe failed.
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateUnavailable:
		return "unavailable"
	case StateUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Status is a fully resolved snapshot of a validator.  All four fields are
// always present once returned from Validator.Status.
type Status struct {
	BaseURL            string   `json:"base_url"`
	Available          bool     `json:"is_available"`
	ErrorMessage       string   `json:"error_message"`
	AvailableEndpoints []string `json:"available_endpoints"`
}

// IsAvailable returns the plain boolean consumers compare between snapshots.
func (s Status) IsAvailable() bool {
	return s.Available
}

// MarshalJSON guarantees available_endpoints is encoded as a list, never null.
func (s Status) MarshalJSON() ([]byte, error) {
	type status Status

	out := status(s)
	if out.AvailableEndpoints == nil {
		out.AvailableEndpoints = []string{}
	}

	return json.Marshal(out)
}

// DefaultCandidates are the paths probed during discovery, in order.  They cover
// the authentication API under the unversioned, /api and /v1 layouts, plus the
// generic health, status and root paths.
//
//nolint:gochecknoglobals
var DefaultCandidates = []string{
	"/auth/login/email",
	"/auth/login/phone",
	"/api/auth/login/email",
	"/api/auth/login/phone",
	"/v1/auth/login/email",
	"/v1/auth/login/phone",
	"/health",
	"/status",
	"/",
}

//nolint:gochecknoglobals
var authPrefixes = []string{
	"/auth",
	"/api/auth",
	"/v1/auth",
}

// IsAuthEndpoint reports whether a candidate is probed with POST rather than GET.
func IsAuthEndpoint(path string) bool {
	for _, prefix := range authPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
