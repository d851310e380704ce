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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
)

const (
	// DefaultProbeTimeout bounds the root availability probe.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultDiscoveryTimeout bounds each discovery probe.
	DefaultDiscoveryTimeout = 5 * time.Second
)

// Doer issues HTTP requests.  *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Validator.
type Option func(*Validator)

// WithClient replaces the HTTP transport used for probes.
func WithClient(client Doer) Option {
	return func(v *Validator) {
		v.client = client
	}
}

// WithProbeTimeout overrides the root probe timeout.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(v *Validator) {
		if timeout > 0 {
			v.probeTimeout = timeout
		}
	}
}

// WithDiscoveryTimeout overrides the per candidate discovery timeout.
func WithDiscoveryTimeout(timeout time.Duration) Option {
	return func(v *Validator) {
		if timeout > 0 {
			v.discoveryTimeout = timeout
		}
	}
}

// WithCandidates replaces the discovery candidate list.
func WithCandidates(candidates []string) Option {
	return func(v *Validator) {
		v.candidates = slices.Clone(candidates)
	}
}

// WithHeaders attaches headers, typically the kiosk identity headers, to every probe.
func WithHeaders(header http.Header) Option {
	return func(v *Validator) {
		v.header = header.Clone()
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator determines whether the remote API root is reachable, and lazily
// enumerates which candidate endpoints exist.
type Validator struct {
	baseURL          string
	client           Doer
	probeTimeout     time.Duration
	discoveryTimeout time.Duration
	candidates       []string
	header           http.Header
	logger           *zap.Logger

	state        State
	errorMessage string

	// endpoints is the discovery cache, valid once discovered is set.
	endpoints  []string
	discovered bool
}

// New returns a validator for the given base URL.
func New(baseURL string, options ...Option) *Validator {
	v := &Validator{
		baseURL:          baseURL,
		client:           &http.Client{},
		probeTimeout:     DefaultProbeTimeout,
		discoveryTimeout: DefaultDiscoveryTimeout,
		candidates:       slices.Clone(DefaultCandidates),
		logger:           zap.NewNop(),
	}

	for _, o := range options {
		o(v)
	}

	return v
}

// BaseURL returns the probe target.
func (v *Validator) BaseURL() string {
	return v.baseURL
}

// State returns the current tri-state availability without probing.
func (v *Validator) State() State {
	return v.state
}

// ErrorMessage returns why the last probe failed, or an empty string.
func (v *Validator) ErrorMessage() string {
	return v.errorMessage
}

// CheckAvailability issues a single GET to the base URL and records the result.
// This is never cached, every call probes and may flip the state.  There are no
// retries, a single probe is authoritative.
func (v *Validator) CheckAvailability(ctx context.Context) bool {
	statusCode, err := v.probe(ctx, http.MethodGet, v.baseURL, nil, v.probeTimeout)
	if err != nil {
		v.setUnavailable(fmt.Sprintf("unable to connect to API server: %v", err))

		return false
	}

	if statusCode != http.StatusOK && statusCode != http.StatusNotFound {
		v.setUnavailable(fmt.Sprintf("API server unavailable, status code: %d", statusCode))

		return false
	}

	v.state = StateAvailable
	v.errorMessage = ""

	v.logger.Debug("api available", zap.String("baseURL", v.baseURL), zap.Int("status", statusCode))

	return true
}

func (v *Validator) setUnavailable(message string) {
	v.state = StateUnavailable
	v.errorMessage = message

	v.logger.Info("api unavailable", zap.String("baseURL", v.baseURL), zap.String("reason", message))
}

// DiscoverEndpoints returns the candidate paths that answered with anything other
// than 404, in candidate order.  Availability is confirmed first, and nothing is
// sent to a host that is unavailable.  The result is cached for the lifetime of
// the validator.
func (v *Validator) DiscoverEndpoints(ctx context.Context) []string {
	if v.state != StateAvailable && !v.CheckAvailability(ctx) {
		return []string{}
	}

	if v.discovered {
		return slices.Clone(v.endpoints)
	}

	root := strings.TrimSuffix(v.baseURL, "/")

	endpoints := make([]string, 0, len(v.candidates))

	// Strictly sequential, this also fixes the result order.
	for _, candidate := range v.candidates {
		method := http.MethodGet

		var body []byte

		if IsAuthEndpoint(candidate) {
			method = http.MethodPost
			body = []byte("{}")
		}

		statusCode, err := v.probe(ctx, method, root+candidate, body, v.discoveryTimeout)
		if err != nil {
			v.logger.Debug("discovery probe failed", zap.String("endpoint", candidate), zap.Error(err))
			continue
		}

		if statusCode == http.StatusNotFound {
			continue
		}

		endpoints = append(endpoints, candidate)
	}

	v.endpoints = endpoints
	v.discovered = true

	v.logger.Debug("discovery complete", zap.String("baseURL", v.baseURL), zap.Strings("endpoints", endpoints))

	return slices.Clone(endpoints)
}

// Status returns a fully populated snapshot.  It probes only if availability is
// still unknown and discovers only if available and not yet discovered, so any
// number of calls perform at most one probe and one discovery pass.
func (v *Validator) Status(ctx context.Context) Status {
	if v.state == StateUnknown {
		v.CheckAvailability(ctx)
	}

	status := Status{
		BaseURL:            v.baseURL,
		Available:          v.state == StateAvailable,
		ErrorMessage:       v.errorMessage,
		AvailableEndpoints: []string{},
	}

	if status.Available {
		if !v.discovered {
			v.DiscoverEndpoints(ctx)
		}

		status.AvailableEndpoints = slices.Clone(v.endpoints)
	}

	return status
}

// probe sends one request bounded by timeout and returns the status code.  The
// body is drained so the connection can be reused.
func (v *Validator) probe(ctx context.Context, method, url string, body []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range v.header {
		req.Header[key] = slices.Clone(values)
	}

	req.Header.Set("User-Agent", constants.VersionString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// IsAvailable probes a fresh validator once.
func IsAvailable(ctx context.Context, baseURL string, options ...Option) bool {
	return New(baseURL, options...).CheckAvailability(ctx)
}

// WorkingEndpoints runs discovery on a fresh validator.
func WorkingEndpoints(ctx context.Context, baseURL string, options ...Option) []string {
	return New(baseURL, options...).DiscoverEndpoints(ctx)
}
