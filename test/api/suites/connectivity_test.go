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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
)

var _ = Describe("Connectivity", func() {
	Context("When building request headers", func() {
		It("should identify the realm and application", func() {
			header := config.AuthHeaders("")

			Expect(header).To(HaveLen(2))
			Expect(header.Get(constants.RealmHeader)).To(Equal(config.RealmID))
			Expect(header.Get(constants.AppzHeader)).To(Equal(config.AppzID))
		})

		It("should add a bearer token when one is given", func() {
			header := config.AuthHeaders("token")

			Expect(header).To(HaveLen(3))
			Expect(header.Get("Authorization")).To(Equal("Bearer token"))
		})
	})

	Context("When checking the API", func() {
		It("should report a fully populated status", func(ctx SpecContext) {
			status := session.Status(ctx)

			Expect(status.BaseURL).To(Equal(config.BaseURL))
			Expect(status.AvailableEndpoints).NotTo(BeNil())

			if status.Available {
				Expect(status.ErrorMessage).To(BeEmpty())
			} else {
				Expect(status.ErrorMessage).NotTo(BeEmpty())
				Expect(status.AvailableEndpoints).To(BeEmpty())
			}

			GinkgoWriter.Printf("API available=%t endpoints=%v error=%q\n", status.Available, status.AvailableEndpoints, status.ErrorMessage)
		})

		It("should only discover known candidate paths", func(ctx SpecContext) {
			for _, endpoint := range session.Status(ctx).AvailableEndpoints {
				Expect(availability.DefaultCandidates).To(ContainElement(endpoint))
			}
		})
	})
})
