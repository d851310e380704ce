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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/gate"
)

// Response is everything a test may want to assert on.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       ParsedBody
	TraceID    string
}

// JSON returns the body as an object when it decoded to one.
func (r *Response) JSON() (map[string]any, bool) {
	body, ok := r.Body.(JSONBody)
	if !ok {
		return nil, false
	}

	object, ok := body.Value.(map[string]any)

	return object, ok
}

type APIClient struct {
	baseURL    string
	client     *http.Client
	authToken  string
	config     *TestConfig
	endpoints  *Endpoints
	gate       *gate.Gate
	propagator propagation.TextMapPropagator
}

// NewAPIClient creates a client from the environment, optionally overriding
// the base URL.
func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = config.BaseURL
	}

	return newAPIClientWithConfig(config, baseURL), nil
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		authToken:  config.AuthToken,
		config:     config,
		endpoints:  NewEndpoints(),
		propagator: propagation.TraceContext{},
	}
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

// SetGate makes every request consult the gate first, so nothing is sent
// once the API is known to be unavailable.
func (c *APIClient) SetGate(g *gate.Gate) {
	c.gate = g
}

func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceID string, err error, what string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s trace=%s error=%v\n", method, path, what, duration, traceID, err)
	c.logTraceContext(traceID)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceID string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", traceID)
}

// newSpanContext creates a sampled span context with random IDs, so each
// request can be found in the server logs if it misbehaves.
func newSpanContext() trace.SpanContext {
	var traceID trace.TraceID

	var spanID trace.SpanID

	_, _ = rand.Read(traceID[:])
	_, _ = rand.Read(spanID[:])

	state, _ := trace.ParseTraceState("test-automation=ginkgo")

	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		TraceState: state,
		Remote:     true,
	})
}

// Do sends a request with the kiosk identity headers.  A non nil body is sent
// as JSON.  Any status code is returned as a response, only transport errors
// are errors.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	if c.gate != nil {
		if result := c.gate.Guard(ctx); result.Outcome == gate.Skip {
			return nil, fmt.Errorf("%w: %s %s not sent", ErrAPIUnavailable, method, path)
		}
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	spanContext := newSpanContext()
	ctx = trace.ContextWithRemoteSpanContext(ctx, spanContext)
	traceID := spanContext.TraceID().String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	for key, values := range c.config.AuthHeaders(c.authToken) {
		req.Header[key] = values
	}

	req.Header.Set("User-Agent", constants.VersionString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceID, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceID, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	parsed := ParseBody(respBody)

	if raw, ok := parsed.(RawBody); ok && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] non-JSON response: %v\n", method, path, raw.Err)
	}

	if c.config.LogRequests || c.config.DebugLogging {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s trace=%s\n", method, path, resp.StatusCode, duration, traceID)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, Text(parsed, 500))
	}

	return &Response{
		Method:     method,
		URL:        fullURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       parsed,
		TraceID:    traceID,
	}, nil
}

func (c *APIClient) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

func (c *APIClient) post(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, query, body)
}

func (c *APIClient) put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

func (c *APIClient) delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// LocationQuery scopes a request to a store location.
func LocationQuery(locationID string) url.Values {
	return url.Values{"location-id": []string{locationID}}
}

// Authentication.
func (c *APIClient) LoginWithEmail(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.LoginEmail(), nil, payload)
}

func (c *APIClient) LoginWithPhone(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.LoginPhone(), nil, payload)
}

func (c *APIClient) SendEmailCode(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.SendCodeEmail(), nil, payload)
}

func (c *APIClient) SendPhoneCode(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.SendCodePhone(), nil, payload)
}

func (c *APIClient) SignInWithEmail(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.SignInWithEmail(), nil, payload)
}

// SignInWithPhoneNumber is scoped to a merchant location.
func (c *APIClient) SignInWithPhoneNumber(ctx context.Context, merchantID, locationID string, payload map[string]any) (*Response, error) {
	query := LocationQuery(locationID)
	query.Set("merchant-id", merchantID)

	return c.post(ctx, c.endpoints.SignInWithPhoneNumber(), query, payload)
}

// Location and device.
func (c *APIClient) GetLocationInfo(ctx context.Context, query url.Values) (*Response, error) {
	return c.get(ctx, c.endpoints.LocationInfo(), query)
}

func (c *APIClient) GetLocationSettings(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.LocationSettings(), nil)
}

func (c *APIClient) UploadDevice(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.DeviceUpload(), nil, payload)
}

func (c *APIClient) GetDeviceStatus(ctx context.Context, deviceID string) (*Response, error) {
	return c.get(ctx, c.endpoints.DeviceStatus(), url.Values{"device-id": []string{deviceID}})
}

// Menu.
func (c *APIClient) ListMenuCategories(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.MenuCategories(), nil)
}

func (c *APIClient) ListMenuItems(ctx context.Context, query url.Values) (*Response, error) {
	return c.get(ctx, c.endpoints.MenuItems(), query)
}

func (c *APIClient) GetMenuItem(ctx context.Context, itemID string) (*Response, error) {
	return c.get(ctx, c.endpoints.MenuItem(itemID), nil)
}

func (c *APIClient) SearchMenu(ctx context.Context, query url.Values) (*Response, error) {
	return c.get(ctx, c.endpoints.MenuSearch(), query)
}

// Loyalty.
func (c *APIClient) ListRewardTiers(ctx context.Context, query url.Values) (*Response, error) {
	return c.get(ctx, c.endpoints.RewardTiers(), query)
}

func (c *APIClient) GetRewardTier(ctx context.Context, tierID string) (*Response, error) {
	return c.get(ctx, c.endpoints.RewardTier(tierID), nil)
}

func (c *APIClient) GetLoyaltyUserInfo(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.LoyaltyUserInfo(), nil)
}

func (c *APIClient) ListLoyaltyTransactions(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.LoyaltyTransactions(), nil)
}

func (c *APIClient) ListLoyaltyRewards(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.LoyaltyRewards(), nil)
}

// Orders.
func (c *APIClient) CreateOrder(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.Orders(), nil, payload)
}

func (c *APIClient) ListOrders(ctx context.Context, query url.Values) (*Response, error) {
	return c.get(ctx, c.endpoints.Orders(), query)
}

func (c *APIClient) GetOrder(ctx context.Context, orderID string) (*Response, error) {
	return c.get(ctx, c.endpoints.Order(orderID), nil)
}

// Payments.
func (c *APIClient) ListPaymentMethods(ctx context.Context, query url.Values) (*Response, error) {
	return c.get(ctx, c.endpoints.PaymentMethods(), query)
}

func (c *APIClient) ProcessPayment(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.ProcessPayment(), nil, payload)
}

func (c *APIClient) ListPaymentHistory(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.PaymentHistory(), nil)
}

func (c *APIClient) GetPaymentStatus(ctx context.Context, paymentID string) (*Response, error) {
	return c.get(ctx, c.endpoints.PaymentStatus(paymentID), nil)
}

func (c *APIClient) RefundPayment(ctx context.Context, paymentID string, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.RefundPayment(paymentID), nil, payload)
}

// User.
func (c *APIClient) GetUserProfile(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.UserProfile(), nil)
}

func (c *APIClient) UpdateUserProfile(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.put(ctx, c.endpoints.UserProfile(), payload)
}

func (c *APIClient) GetUserPreferences(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.UserPreferences(), nil)
}

func (c *APIClient) UpdateUserPreferences(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.put(ctx, c.endpoints.UserPreferences(), payload)
}

func (c *APIClient) ListUserOrders(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.UserOrders(), nil)
}

func (c *APIClient) ListUserFavorites(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.endpoints.UserFavorites(), nil)
}

func (c *APIClient) AddUserFavorite(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.endpoints.UserFavorites(), nil, payload)
}

func (c *APIClient) RemoveUserFavorite(ctx context.Context, itemID string) (*Response, error) {
	return c.delete(ctx, c.endpoints.UserFavorite(itemID))
}
