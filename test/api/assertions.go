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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/gate"
)

// ErrorStatusCodes are accepted when an error body is not JSON.
//
//nolint:gochecknoglobals
var ErrorStatusCodes = []int{400, 401, 404, 500}

// Send unwraps a client call.  A request blocked by the gate skips the test,
// any other error fails it.
func Send(resp *Response, err error) *Response {
	GinkgoHelper()

	if errors.Is(err, ErrAPIUnavailable) {
		Skip(gate.ReasonAPIUnavailable)
	}

	Expect(err).NotTo(HaveOccurred(), "request failed")

	return resp
}

// ExpectStatusIn asserts the status code is one of those given.
func ExpectStatusIn(resp *Response, codes ...int) {
	GinkgoHelper()

	Expect(resp.StatusCode).To(BeElementOf(codes),
		"%s %s returned %d (trace %s): %s", resp.Method, resp.URL, resp.StatusCode, resp.TraceID, Text(resp.Body, 200))
}

// ExpectJSONKeys asserts the body is a JSON object with the given keys.
func ExpectJSONKeys(resp *Response, keys ...string) map[string]any {
	GinkgoHelper()

	object, ok := resp.JSON()
	Expect(ok).To(BeTrue(), "expected a JSON object from %s %s, got %q", resp.Method, resp.URL, Text(resp.Body, 200))

	for _, key := range keys {
		Expect(object).To(HaveKey(key))
	}

	return object
}

// ExpectJSONKeysOnSuccess checks the body only when the request succeeded,
// staging deployments often answer 401 or 404 for unseeded fixtures.
func ExpectJSONKeysOnSuccess(resp *Response, keys ...string) {
	GinkgoHelper()

	if resp.StatusCode == 200 {
		ExpectJSONKeys(resp, keys...)
	}
}

// ExpectErrorResponse checks a JSON error carries the expected code, anything
// else must at least have an error status.
func ExpectErrorResponse(resp *Response, code int) {
	GinkgoHelper()

	if object, ok := resp.JSON(); ok {
		Expect(object).To(HaveKeyWithValue("code", BeNumerically("==", code)))
		return
	}

	Expect(resp.StatusCode).To(BeElementOf(ErrorStatusCodes))
}
