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

package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/gate"
)

// Session ties together everything a test run shares: one validator, one
// gate evaluated at most once, and a client that honours the gate.
type Session struct {
	config    *TestConfig
	validator *availability.Validator
	gate      *gate.Gate
	client    *APIClient
}

// integrationDisabled reports the API as unavailable without probing, so
// SKIP_INTEGRATION skips every gated spec.
type integrationDisabled struct{}

func (integrationDisabled) CheckAvailability(context.Context) bool {
	return false
}

// NewSession creates a session.  Nothing is probed until a gated spec or a
// request first needs to know.
func NewSession(config *TestConfig, logger *zap.Logger) *Session {
	validator := availability.New(config.BaseURL,
		availability.WithHeaders(config.AuthHeaders(config.AuthToken)),
		availability.WithLogger(logger),
	)

	var checker gate.AvailabilityChecker = validator

	if config.SkipIntegration {
		checker = integrationDisabled{}
	}

	g := gate.New(checker)

	client := NewAPIClientWithConfig(config)
	client.SetGate(g)

	return &Session{
		config:    config,
		validator: validator,
		gate:      g,
		client:    client,
	}
}

func (s *Session) Config() *TestConfig {
	return s.config
}

func (s *Session) Gate() *gate.Gate {
	return s.gate
}

func (s *Session) Client() *APIClient {
	return s.client
}

// Status returns the availability snapshot, probing only if nothing has yet.
func (s *Session) Status(ctx context.Context) availability.Status {
	return s.validator.Status(ctx)
}
