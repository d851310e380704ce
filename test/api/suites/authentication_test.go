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

	"github.com/orderwithinfi/kiosk-api-tests/pkg/gate"
	"github.com/orderwithinfi/kiosk-api-tests/test/api"
)

var _ = Describe("Authentication", gate.APIRequired, func() {
	Context("When logging in by email", func() {
		Describe("Given valid credentials", func() {
			It("should accept the login", func(ctx SpecContext) {
				resp := api.Send(client.LoginWithEmail(ctx, api.NewEmailLogin(config.TestData.Emails[0], "123123").Build()))

				api.ExpectStatusIn(resp, 200, 401, 404)
				api.ExpectJSONKeysOnSuccess(resp)
			})

			DescribeTable("should accept every seeded account",
				func(ctx SpecContext, email string) {
					resp := api.Send(client.LoginWithEmail(ctx, api.NewEmailLogin(email, "123123").Build()))

					api.ExpectStatusIn(resp, 200, 401, 404)
				},
				Entry("first account", "test001@infi.us"),
				Entry("second account", "test002@infi.us"),
				Entry("third account", "test003@infi.us"),
			)
		})

		Describe("Given invalid credentials", func() {
			It("should reject a wrong password", func(ctx SpecContext) {
				resp := api.Send(client.LoginWithEmail(ctx, api.NewEmailLogin("invalid@example.com", "wrongpassword").Build()))

				api.ExpectStatusIn(resp, 401, 404)
			})

			DescribeTable("should reject incomplete payloads",
				func(ctx SpecContext, missing string) {
					resp := api.Send(client.LoginWithEmail(ctx, api.NewEmailLogin(config.TestData.Emails[0], "123123").Without(missing).Build()))

					api.ExpectStatusIn(resp, 400, 404)
				},
				Entry("missing password", "password"),
				Entry("missing email", "email"),
			)
		})
	})

	Context("When logging in by phone", func() {
		It("should accept the login", func(ctx SpecContext) {
			resp := api.Send(client.LoginWithPhone(ctx, api.NewPhoneLogin(config.TestData.Phones[0], "123123").Build()))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})
	})

	Context("When signing in through the v1 endpoints", func() {
		It("should sign in with an email", func(ctx SpecContext) {
			resp := api.Send(client.SignInWithEmail(ctx, api.NewEmailLogin(config.TestData.Emails[1], "123123").Build()))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should sign in with a phone number and code", func(ctx SpecContext) {
			resp := api.Send(client.SignInWithPhoneNumber(ctx, "merchant-001", config.TestData.LocationID,
				api.NewPhoneSignIn(config.TestData.Phones[0], "684570").Build()))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})
	})
})

var _ = Describe("Verification codes", gate.APIRequired, func() {
	Context("When requesting a code by email", func() {
		DescribeTable("should send the code",
			func(ctx SpecContext, email string) {
				resp := api.Send(client.SendEmailCode(ctx, api.NewEmailCode(email).Build()))

				api.ExpectStatusIn(resp, 200, 201, 404)
			},
			Entry("first address", "test001@example.com"),
			Entry("second address", "test002@example.com"),
			Entry("third address", "test003@example.com"),
		)

		It("should reject a malformed address", func(ctx SpecContext) {
			resp := api.Send(client.SendEmailCode(ctx, api.NewEmailCode("invalid-email").Build()))

			api.ExpectStatusIn(resp, 400, 404)
		})

		It("should reject an empty payload", func(ctx SpecContext) {
			resp := api.Send(client.SendEmailCode(ctx, map[string]any{}))

			api.ExpectStatusIn(resp, 400, 404)
		})
	})

	Context("When requesting a code by SMS", func() {
		DescribeTable("should send the code",
			func(ctx SpecContext, phone string) {
				resp := api.Send(client.SendPhoneCode(ctx, api.NewPhoneCode(phone).Build()))

				api.ExpectStatusIn(resp, 200, 201, 404)
			},
			Entry("first number", "1234567890"),
			Entry("second number", "9876543210"),
			Entry("third number", "5555555555"),
		)

		It("should reject a malformed number", func(ctx SpecContext) {
			resp := api.Send(client.SendPhoneCode(ctx, api.NewPhoneCode("123").Build()))

			api.ExpectStatusIn(resp, 400, 404)
		})

		It("should reject an empty payload", func(ctx SpecContext) {
			resp := api.Send(client.SendPhoneCode(ctx, map[string]any{}))

			api.ExpectStatusIn(resp, 400, 404)
		})
	})
})
