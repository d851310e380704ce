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

package kiosk

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
)

// Config is the environment derived configuration shared by the validator,
// the header builder, the test suites and the monitor.
type Config struct {
	BaseURL     string
	RealmID     string
	AppzID      string
	TestTimeout time.Duration
	RetryCount  int
	TestData    TestData
}

// TestData is the fixture data the kiosk staging environment is seeded with.
type TestData struct {
	Emails            []string
	Phones            []string
	LocationID        string
	PaymentMethods    []string
	OrderStatuses     []string
	NotificationTypes []string
	RewardTiers       []string
	MenuCategories    []string
}

// DefaultTestData returns the data seeded into the staging realm.
func DefaultTestData() TestData {
	return TestData{
		Emails: []string{
			"test001@infi.us",
			"test002@infi.us",
			"test003@infi.us",
		},
		Phones: []string{
			"+13124029005",
			"+13124029006",
			"+13124029007",
		},
		LocationID:        "5382410a-d2d7-4271-a29c-385a38ebbca9",
		PaymentMethods:    []string{"card", "cash", "mobile_payment", "gift_card"},
		OrderStatuses:     []string{"pending", "confirmed", "preparing", "ready", "completed", "cancelled"},
		NotificationTypes: []string{"order_update", "payment", "promotion", "system"},
		RewardTiers:       []string{"bronze", "silver", "gold", "platinum"},
		MenuCategories:    []string{"main-courses", "appetizers", "desserts", "beverages"},
	}
}

// LoadConfig loads configuration from environment variables and .env files.
// Every value has a default so this never fails.
func LoadConfig() Config {
	loadEnvFile()

	return Config{
		BaseURL:     getStringWithDefault("BASE_URL", constants.DefaultBaseURL),
		RealmID:     getStringWithDefault("REALM_ID", constants.DefaultRealmID),
		AppzID:      getStringWithDefault("APPZ_ID", constants.DefaultAppzID),
		TestTimeout: GetDurationWithDefault("TEST_TIMEOUT", 30*time.Second),
		RetryCount:  getIntWithDefault("TEST_RETRY_COUNT", 3),
		TestData:    DefaultTestData(),
	}
}

// APIConfig returns the connection settings as a flat map, used by reports.
func (c Config) APIConfig() map[string]string {
	return map[string]string{
		"base_url": c.BaseURL,
		"realm_id": c.RealmID,
		"appz_id":  c.AppzID,
	}
}

func getStringWithDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	return value
}

// GetDurationWithDefault gets a duration from environment variable or returns default.
// Bare integers are read as seconds.
func GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// GetBoolWithDefault gets a boolean from environment variable or returns default.
func GetBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
