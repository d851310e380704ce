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
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/kiosk"
)

type TestConfig struct {
	kiosk.Config

	AuthToken       string
	RequestTimeout  time.Duration
	SkipIntegration bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Connection settings default to the staging realm, an error is returned only
// when a value is present but unusable.
func LoadTestConfig() (*TestConfig, error) {
	config := &TestConfig{
		Config:          kiosk.LoadConfig(),
		AuthToken:       os.Getenv("API_AUTH_TOKEN"),
		SkipIntegration: kiosk.GetBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:    kiosk.GetBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:     kiosk.GetBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    kiosk.GetBoolWithDefault("LOG_RESPONSES", false),
	}

	config.RequestTimeout = kiosk.GetDurationWithDefault("REQUEST_TIMEOUT", config.TestTimeout)

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateRequiredFields checks that the connection settings are usable.
func validateRequiredFields(config *TestConfig) error {
	var problems []string

	if u, err := url.Parse(config.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("BASE_URL %q is not an absolute http(s) URL", config.BaseURL))
	}

	if config.RealmID == "" {
		problems = append(problems, "REALM_ID is empty")
	}

	if config.AppzID == "" {
		problems = append(problems, "APPZ_ID is empty")
	}

	if config.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s. Please fix these environment variables or the .env file", ErrInvalidConfig, strings.Join(problems, ", "))
	}

	return nil
}
