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
	"net/url"

	. "github.com/onsi/ginkgo/v2"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/gate"
	"github.com/orderwithinfi/kiosk-api-tests/test/api"
)

var _ = Describe("Location and devices", gate.APIRequired, func() {
	Context("When reading location details", func() {
		It("should return the location info", func(ctx SpecContext) {
			resp := api.Send(client.GetLocationInfo(ctx, nil))

			api.ExpectStatusIn(resp, 200, 404)
		})

		It("should return the location settings", func(ctx SpecContext) {
			resp := api.Send(client.GetLocationSettings(ctx))

			api.ExpectStatusIn(resp, 200, 404)
		})

		DescribeTable("should resolve a location by ID",
			func(ctx SpecContext, locationID string) {
				resp := api.Send(client.GetLocationInfo(ctx, api.LocationQuery(locationID)))

				api.ExpectStatusIn(resp, 200, 404)
			},
			Entry("seeded location", "5382410a-d2d7-4271-a29c-385a38ebbca9"),
			Entry("first test location", "test-location-1"),
			Entry("second test location", "test-location-2"),
		)
	})

	Context("When registering a device", func() {
		DescribeTable("should accept each device type",
			func(ctx SpecContext, deviceType string) {
				resp := api.Send(client.UploadDevice(ctx, api.NewDevice(config, deviceType).Build()))

				api.ExpectStatusIn(resp, 200, 201, 404)
			},
			Entry("kiosk", "kiosk"),
			Entry("tablet", "tablet"),
			Entry("mobile", "mobile"),
		)

		It("should report device status", func(ctx SpecContext) {
			resp := api.Send(client.GetDeviceStatus(ctx, "test-device-001"))

			api.ExpectStatusIn(resp, 200, 404)
		})
	})
})

var _ = Describe("Menu", gate.APIRequired, func() {
	Context("When browsing the menu", func() {
		It("should list categories", func(ctx SpecContext) {
			resp := api.Send(client.ListMenuCategories(ctx))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list items", func(ctx SpecContext) {
			resp := api.Send(client.ListMenuItems(ctx, nil))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list items at a location", func(ctx SpecContext) {
			resp := api.Send(client.ListMenuItems(ctx, api.LocationQuery(config.TestData.LocationID)))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list main courses", func(ctx SpecContext) {
			resp := api.Send(client.ListMenuItems(ctx, url.Values{"category_id": []string{"main-courses"}}))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list items in every category", func(ctx SpecContext) {
			for _, category := range config.TestData.MenuCategories {
				resp := api.Send(client.ListMenuItems(ctx, url.Values{"category_id": []string{category}}))

				api.ExpectStatusIn(resp, 200, 404)
			}
		})

		It("should return item details", func(ctx SpecContext) {
			resp := api.Send(client.GetMenuItem(ctx, "item-001"))

			api.ExpectStatusIn(resp, 200, 404)
		})
	})

	Context("When searching the menu", func() {
		It("should find items by keyword", func(ctx SpecContext) {
			query := api.LocationQuery(config.TestData.LocationID)
			query.Set("query", "burger")

			resp := api.Send(client.SearchMenu(ctx, query))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})
	})
})

var _ = Describe("Loyalty", gate.APIRequired, func() {
	Context("When reading reward tiers", func() {
		It("should list the tiers", func(ctx SpecContext) {
			resp := api.Send(client.ListRewardTiers(ctx, nil))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list the tiers at a location", func(ctx SpecContext) {
			resp := api.Send(client.ListRewardTiers(ctx, api.LocationQuery(config.TestData.LocationID)))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		DescribeTable("should return tier details",
			func(ctx SpecContext, tier string) {
				resp := api.Send(client.GetRewardTier(ctx, tier))

				api.ExpectStatusIn(resp, 200, 404)
			},
			Entry("bronze", "bronze"),
			Entry("silver", "silver"),
			Entry("gold", "gold"),
			Entry("platinum", "platinum"),
		)
	})

	Context("When reading the member account", func() {
		It("should return the member", func(ctx SpecContext) {
			resp := api.Send(client.GetLoyaltyUserInfo(ctx))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list rewards", func(ctx SpecContext) {
			resp := api.Send(client.ListLoyaltyRewards(ctx))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})

		It("should list transactions", func(ctx SpecContext) {
			resp := api.Send(client.ListLoyaltyTransactions(ctx))

			api.ExpectStatusIn(resp, 200, 401, 404)
		})
	})
})
