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

package availability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/kiosk"
)

var errConnectionRefused = errors.New("dial tcp 10.0.0.1:443: connect: connection refused")

type recordedRequest struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	Realm       string
}

// routerDoer dispatches requests straight into a handler, counting every call.
// Paths listed in failures return a transport error instead.
type routerDoer struct {
	handler  http.Handler
	failures map[string]error
	requests []recordedRequest
}

func newRouterDoer(handler http.Handler) *routerDoer {
	return &routerDoer{
		handler:  handler,
		failures: map[string]error{},
	}
}

func (d *routerDoer) Do(req *http.Request) (*http.Response, error) {
	var body []byte

	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}

		body = data
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	d.requests = append(d.requests, recordedRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		Body:        string(body),
		ContentType: req.Header.Get("Content-Type"),
		Realm:       req.Header.Get("X-Realm-ID"),
	})

	if err, ok := d.failures[req.URL.Path]; ok {
		return nil, err
	}

	recorder := httptest.NewRecorder()
	d.handler.ServeHTTP(recorder, req)

	return recorder.Result(), nil
}

func (d *routerDoer) calls() int {
	return len(d.requests)
}

func (d *routerDoer) paths() []string {
	paths := make([]string, len(d.requests))

	for i, r := range d.requests {
		paths[i] = r.Path
	}

	return paths
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
}

// kioskRouter fakes a kiosk API mounted under /api whose root answers 404 and
// which only exposes the email login endpoint.
func kioskRouter() http.Handler {
	router := chi.NewRouter()
	router.Get("/api", status(http.StatusNotFound))
	router.Post("/api/auth/login/email", status(http.StatusUnauthorized))

	return router
}

var _ = Describe("Validator", func() {
	var (
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("When checking availability", func() {
		DescribeTable("classifies the root probe status code",
			func(code int, available bool) {
				router := chi.NewRouter()
				router.Get("/", status(code))

				doer := newRouterDoer(router)
				validator := availability.New("https://example.test/", availability.WithClient(doer))

				Expect(validator.State()).To(Equal(availability.StateUnknown))
				Expect(validator.CheckAvailability(ctx)).To(Equal(available))
				Expect(doer.calls()).To(Equal(1))

				if available {
					Expect(validator.State()).To(Equal(availability.StateAvailable))
					Expect(validator.ErrorMessage()).To(BeEmpty())
				} else {
					Expect(validator.State()).To(Equal(availability.StateUnavailable))
					Expect(validator.ErrorMessage()).To(ContainSubstring("status code"))
					Expect(validator.ErrorMessage()).To(HaveSuffix(strconv.Itoa(code)))
				}
			},
			Entry("200 is available", http.StatusOK, true),
			Entry("404 is available", http.StatusNotFound, true),
			Entry("500 is unavailable", http.StatusInternalServerError, false),
			Entry("503 is unavailable", http.StatusServiceUnavailable, false),
			Entry("401 is unavailable", http.StatusUnauthorized, false),
			Entry("201 is unavailable", http.StatusCreated, false),
		)

		It("should report transport failures with the underlying error", func() {
			// Given: a host that refuses connections
			doer := newRouterDoer(chi.NewRouter())
			doer.failures["/api"] = errConnectionRefused

			validator := availability.New("https://example.test/api", availability.WithClient(doer))

			// When: I check availability
			available := validator.CheckAvailability(ctx)

			// Then: it is unavailable and the message names the transport error
			Expect(available).To(BeFalse())
			Expect(validator.ErrorMessage()).To(ContainSubstring("unable to connect"))
			Expect(validator.ErrorMessage()).To(ContainSubstring("connection refused"))
		})

		It("should bound the probe with a timeout", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			}))
			DeferCleanup(server.Close)

			validator := availability.New(server.URL, availability.WithProbeTimeout(50*time.Millisecond))

			start := time.Now()
			Expect(validator.CheckAvailability(ctx)).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
			Expect(validator.ErrorMessage()).To(ContainSubstring("unable to connect"))
		})

		It("should re-probe on every call and may flip state", func() {
			code := http.StatusOK

			router := chi.NewRouter()
			router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			})

			doer := newRouterDoer(router)
			validator := availability.New("https://example.test/", availability.WithClient(doer))

			Expect(validator.CheckAvailability(ctx)).To(BeTrue())

			code = http.StatusBadGateway
			Expect(validator.CheckAvailability(ctx)).To(BeFalse())
			Expect(validator.ErrorMessage()).To(ContainSubstring("502"))

			code = http.StatusNotFound
			Expect(validator.CheckAvailability(ctx)).To(BeTrue())
			Expect(validator.ErrorMessage()).To(BeEmpty())
			Expect(doer.calls()).To(Equal(3))
		})

		It("should send identity headers when configured", func() {
			router := chi.NewRouter()
			router.Get("/", status(http.StatusOK))

			doer := newRouterDoer(router)
			validator := availability.New("https://example.test/",
				availability.WithClient(doer),
				availability.WithHeaders(kiosk.AuthHeaders("dev-realm", "kiosk-self-ordering", "")))

			Expect(validator.CheckAvailability(ctx)).To(BeTrue())
			Expect(doer.requests[0].Realm).To(Equal("dev-realm"))
		})

		It("should treat a malformed base URL as unavailable", func() {
			validator := availability.New("://not a url", availability.WithClient(newRouterDoer(chi.NewRouter())))

			Expect(validator.CheckAvailability(ctx)).To(BeFalse())
			Expect(validator.ErrorMessage()).To(ContainSubstring("unable to connect"))
		})
	})

	Context("When discovering endpoints", func() {
		It("should probe auth candidates with POST and others with GET", func() {
			// Given: the kiosk API answers 404 at its root
			doer := newRouterDoer(kioskRouter())
			validator := availability.New("https://example.test/api", availability.WithClient(doer))

			// When: I discover endpoints
			endpoints := validator.DiscoverEndpoints(ctx)

			// Then: the login endpoint is found and health is not
			Expect(endpoints).To(Equal([]string{"/auth/login/email"}))

			// And: one root probe plus one probe per candidate was sent
			Expect(doer.calls()).To(Equal(1 + len(availability.DefaultCandidates)))

			for _, r := range doer.requests[1:] {
				candidate := r.Path[len("/api"):]
				if availability.IsAuthEndpoint(candidate) {
					Expect(r.Method).To(Equal(http.MethodPost), candidate)
					Expect(r.Body).To(Equal("{}"))
					Expect(r.ContentType).To(Equal("application/json"))
				} else {
					Expect(r.Method).To(Equal(http.MethodGet), candidate)
					Expect(r.Body).To(BeEmpty())
				}
			}
		})

		It("should count error statuses as registered routes", func() {
			router := chi.NewRouter()
			router.Get("/", status(http.StatusOK))
			router.Post("/auth/login/phone", status(http.StatusBadRequest))
			router.Post("/v1/auth/login/email", status(http.StatusInternalServerError))
			router.Get("/status", status(http.StatusOK))

			doer := newRouterDoer(router)
			validator := availability.New("https://example.test", availability.WithClient(doer))

			Expect(validator.DiscoverEndpoints(ctx)).To(Equal([]string{
				"/auth/login/phone",
				"/v1/auth/login/email",
				"/status",
				"/",
			}))
		})

		It("should cache the result and never probe again", func() {
			doer := newRouterDoer(kioskRouter())
			validator := availability.New("https://example.test/api", availability.WithClient(doer))

			first := validator.DiscoverEndpoints(ctx)
			calls := doer.calls()

			for range 3 {
				Expect(validator.DiscoverEndpoints(ctx)).To(Equal(first))
				Expect(validator.Status(ctx).AvailableEndpoints).To(Equal(first))
			}

			Expect(doer.calls()).To(Equal(calls))
		})

		It("should cache an empty result too", func() {
			router := chi.NewRouter()
			router.Get("/", status(http.StatusOK))

			doer := newRouterDoer(router)
			validator := availability.New("https://example.test/", availability.WithClient(doer),
				availability.WithCandidates([]string{"/health"}))

			Expect(validator.DiscoverEndpoints(ctx)).To(BeEmpty())
			calls := doer.calls()

			Expect(validator.DiscoverEndpoints(ctx)).To(BeEmpty())
			Expect(doer.calls()).To(Equal(calls))
		})

		It("should return a copy of the cache", func() {
			doer := newRouterDoer(kioskRouter())
			validator := availability.New("https://example.test/api", availability.WithClient(doer))

			endpoints := validator.DiscoverEndpoints(ctx)
			endpoints[0] = "/mutated"

			Expect(validator.DiscoverEndpoints(ctx)).To(Equal([]string{"/auth/login/email"}))
		})

		It("should not probe any candidate on an unavailable host", func() {
			// Given: a root that answers 500
			router := chi.NewRouter()
			router.Get("/", status(http.StatusInternalServerError))
			router.Get("/health", status(http.StatusOK))

			doer := newRouterDoer(router)
			validator := availability.New("https://example.test/", availability.WithClient(doer))

			Expect(validator.CheckAvailability(ctx)).To(BeFalse())

			// When: I discover endpoints
			endpoints := validator.DiscoverEndpoints(ctx)

			// Then: nothing is returned and only the root was ever probed
			Expect(endpoints).To(BeEmpty())
			Expect(doer.paths()).To(HaveEach("/"))
		})

		It("should survive a transport failure on one candidate", func() {
			// Given: five candidates where the third cannot be reached
			router := chi.NewRouter()
			router.Get("/", status(http.StatusOK))
			router.Get("/c1", status(http.StatusOK))
			router.Get("/c3", status(http.StatusOK))
			router.Get("/c4", status(http.StatusInternalServerError))
			router.Get("/c5", status(http.StatusUnauthorized))

			doer := newRouterDoer(router)
			doer.failures["/c3"] = errConnectionRefused

			validator := availability.New("https://example.test/",
				availability.WithClient(doer),
				availability.WithCandidates([]string{"/c1", "/c2", "/c3", "/c4", "/c5"}))

			// When: I discover endpoints
			endpoints := validator.DiscoverEndpoints(ctx)

			// Then: candidates after the failure were still evaluated
			Expect(endpoints).To(Equal([]string{"/c1", "/c4", "/c5"}))
			Expect(doer.paths()).To(Equal([]string{"/", "/c1", "/c2", "/c3", "/c4", "/c5"}))
		})
	})

	Context("When taking a status snapshot", func() {
		It("should resolve the example scenario", func() {
			doer := newRouterDoer(kioskRouter())
			validator := availability.New("https://example.test/api", availability.WithClient(doer))

			status := validator.Status(ctx)

			Expect(status.BaseURL).To(Equal("https://example.test/api"))
			Expect(status.Available).To(BeTrue())
			Expect(status.IsAvailable()).To(BeTrue())
			Expect(status.ErrorMessage).To(BeEmpty())
			Expect(status.AvailableEndpoints).To(ContainElement("/auth/login/email"))
			Expect(status.AvailableEndpoints).NotTo(ContainElement("/health"))
		})

		It("should probe at most once and discover at most once", func() {
			doer := newRouterDoer(kioskRouter())
			validator := availability.New("https://example.test/api", availability.WithClient(doer))

			first := validator.Status(ctx)
			calls := doer.calls()

			Expect(calls).To(Equal(1 + len(availability.DefaultCandidates)))

			for range 5 {
				Expect(validator.Status(ctx)).To(Equal(first))
			}

			Expect(doer.calls()).To(Equal(calls))
		})

		It("should populate every field for an unavailable host", func() {
			doer := newRouterDoer(chi.NewRouter())
			doer.failures["/"] = errConnectionRefused

			validator := availability.New("https://example.test/", availability.WithClient(doer))

			status := validator.Status(ctx)

			Expect(status.Available).To(BeFalse())
			Expect(status.ErrorMessage).NotTo(BeEmpty())
			Expect(status.AvailableEndpoints).NotTo(BeNil())
			Expect(status.AvailableEndpoints).To(BeEmpty())

			// And: further snapshots reuse the resolved state
			validator.Status(ctx)
			Expect(doer.calls()).To(Equal(1))
		})

		It("should hide cached endpoints once the host becomes unavailable", func() {
			code := http.StatusNotFound

			router := chi.NewRouter()
			router.Get("/api", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			})
			router.Post("/api/auth/login/email", status(http.StatusUnauthorized))

			validator := availability.New("https://example.test/api", availability.WithClient(newRouterDoer(router)))

			Expect(validator.Status(ctx).AvailableEndpoints).To(HaveLen(1))

			code = http.StatusServiceUnavailable
			Expect(validator.CheckAvailability(ctx)).To(BeFalse())

			status := validator.Status(ctx)
			Expect(status.Available).To(BeFalse())
			Expect(status.AvailableEndpoints).To(BeEmpty())
		})

		It("should encode all four fields as JSON", func() {
			status := availability.Status{BaseURL: "https://example.test"}

			data, err := status.MarshalJSON()
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(MatchJSON(`{
				"base_url": "https://example.test",
				"is_available": false,
				"error_message": "",
				"available_endpoints": []
			}`))
		})
	})

	Context("When using the convenience helpers", func() {
		It("should build a fresh validator each time", func() {
			doer := newRouterDoer(kioskRouter())

			Expect(availability.IsAvailable(ctx, "https://example.test/api", availability.WithClient(doer))).To(BeTrue())
			Expect(availability.WorkingEndpoints(ctx, "https://example.test/api", availability.WithClient(doer))).To(Equal([]string{"/auth/login/email"}))

			// One root probe per helper, plus a single discovery pass.
			Expect(doer.calls()).To(Equal(2 + len(availability.DefaultCandidates)))
		})
	})
})
