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
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) LoginEmail() string {
	return "/auth/login/email"
}

func (e *Endpoints) LoginPhone() string {
	return "/auth/login/phone"
}

func (e *Endpoints) SendCodeEmail() string {
	return "/auth/send-code/email"
}

func (e *Endpoints) SendCodePhone() string {
	return "/auth/send-code/phone"
}

func (e *Endpoints) SignInWithEmail() string {
	return "/v1/auth/sign-in-with-email"
}

func (e *Endpoints) SignInWithPhoneNumber() string {
	return "/v1/auth/sign-in-with-phone-number"
}

// Location and device endpoints.
func (e *Endpoints) LocationInfo() string {
	return "/v1/location/info"
}

func (e *Endpoints) LocationSettings() string {
	return "/v1/location/settings"
}

func (e *Endpoints) DeviceUpload() string {
	return "/v1/device/upload"
}

func (e *Endpoints) DeviceStatus() string {
	return "/v1/device/status"
}

// Menu endpoints.
func (e *Endpoints) MenuCategories() string {
	return "/v1/menu/categories"
}

func (e *Endpoints) MenuItems() string {
	return "/v1/menu/items"
}

func (e *Endpoints) MenuItem(itemID string) string {
	return fmt.Sprintf("/v1/menu/items/%s",
		url.PathEscape(itemID))
}

func (e *Endpoints) MenuSearch() string {
	return "/v1/menu/search"
}

// Loyalty endpoints.
func (e *Endpoints) RewardTiers() string {
	return "/v1/loyalty/reward-tiers"
}

func (e *Endpoints) RewardTier(tierID string) string {
	return fmt.Sprintf("/v1/loyalty/reward-tiers/%s",
		url.PathEscape(tierID))
}

func (e *Endpoints) LoyaltyUserInfo() string {
	return "/v1/loyalty/user-info"
}

func (e *Endpoints) LoyaltyTransactions() string {
	return "/v1/loyalty/transactions"
}

func (e *Endpoints) LoyaltyRewards() string {
	return "/v1/loyalty/rewards"
}

// Order endpoints.
func (e *Endpoints) Orders() string {
	return "/v1/orders"
}

func (e *Endpoints) Order(orderID string) string {
	return fmt.Sprintf("/v1/orders/%s",
		url.PathEscape(orderID))
}

// Payment endpoints.
func (e *Endpoints) PaymentMethods() string {
	return "/v1/payment/methods"
}

func (e *Endpoints) ProcessPayment() string {
	return "/v1/payment/process"
}

func (e *Endpoints) PaymentHistory() string {
	return "/v1/payment/history"
}

func (e *Endpoints) PaymentStatus(paymentID string) string {
	return fmt.Sprintf("/v1/payment/%s/status",
		url.PathEscape(paymentID))
}

func (e *Endpoints) RefundPayment(paymentID string) string {
	return fmt.Sprintf("/v1/payment/%s/refund",
		url.PathEscape(paymentID))
}

// User endpoints.
func (e *Endpoints) UserProfile() string {
	return "/v1/user/profile"
}

func (e *Endpoints) UserPreferences() string {
	return "/v1/user/preferences"
}

func (e *Endpoints) UserOrders() string {
	return "/v1/user/orders"
}

func (e *Endpoints) UserFavorites() string {
	return "/v1/user/favorites"
}

func (e *Endpoints) UserFavorite(itemID string) string {
	return fmt.Sprintf("/v1/user/favorites/%s",
		url.PathEscape(itemID))
}
