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
	"maps"
	"time"
)

// PayloadBuilder builds request bodies for testing.  Builders start from a
// payload the staging environment accepts and tests knock out or override
// fields to probe validation.
type PayloadBuilder struct {
	payload map[string]any
}

func newPayload(payload map[string]any) *PayloadBuilder {
	return &PayloadBuilder{
		payload: payload,
	}
}

// With sets a top level field.
func (b *PayloadBuilder) With(key string, value any) *PayloadBuilder {
	b.payload[key] = value
	return b
}

// Without removes a top level field to test missing field validation.
func (b *PayloadBuilder) Without(key string) *PayloadBuilder {
	delete(b.payload, key)
	return b
}

// Build returns a copy of the completed payload.
func (b *PayloadBuilder) Build() map[string]any {
	return maps.Clone(b.payload)
}

// NewEmailLogin creates an email and password login payload.
func NewEmailLogin(email, password string) *PayloadBuilder {
	return newPayload(map[string]any{
		"email":    email,
		"password": password,
	})
}

// NewPhoneLogin creates a phone and password login payload.
func NewPhoneLogin(phone, password string) *PayloadBuilder {
	return newPayload(map[string]any{
		"phone":    phone,
		"password": password,
	})
}

// NewEmailCode requests a verification code by email.
func NewEmailCode(email string) *PayloadBuilder {
	return newPayload(map[string]any{
		"email": email,
	})
}

// NewPhoneCode requests a verification code by SMS.
func NewPhoneCode(phone string) *PayloadBuilder {
	return newPayload(map[string]any{
		"phone": phone,
	})
}

// NewPhoneSignIn completes a phone sign in with a received code.
func NewPhoneSignIn(phoneNumber, code string) *PayloadBuilder {
	return newPayload(map[string]any{
		"phone_number":      phoneNumber,
		"verification_code": code,
	})
}

// NewDevice creates a device registration payload for the configured location.
func NewDevice(config *TestConfig, deviceType string) *PayloadBuilder {
	return newPayload(map[string]any{
		"device-id":   GenerateTestID(),
		"device-type": deviceType,
		"location-id": config.TestData.LocationID,
		"status":      "active",
	})
}

// OrderItem is a line in an order.
type OrderItem struct {
	ItemID         string
	Quantity       int
	Customizations map[string]string
}

func (i OrderItem) payload() map[string]any {
	customizations := make([]map[string]any, 0, len(i.Customizations))

	for option, value := range i.Customizations {
		customizations = append(customizations, map[string]any{
			"option_id": option,
			"value":     value,
		})
	}

	return map[string]any{
		"item_id":        i.ItemID,
		"quantity":       i.Quantity,
		"customizations": customizations,
	}
}

// NewOrder creates an order for two menu items paid by the given method.
func NewOrder(config *TestConfig, paymentMethod string) *PayloadBuilder {
	b := newPayload(map[string]any{
		"location_id":    config.TestData.LocationID,
		"payment_method": paymentMethod,
		"pickup_time":    time.Date(2024, time.January, 15, 12, 30, 0, 0, time.UTC).Format(time.RFC3339),
	})

	return b.WithItems(
		OrderItem{ItemID: "item-001", Quantity: 2},
		OrderItem{ItemID: "item-002", Quantity: 1, Customizations: map[string]string{"option-001": "large"}},
	)
}

// WithItems replaces the order lines, with no arguments the order is empty.
func (b *PayloadBuilder) WithItems(items ...OrderItem) *PayloadBuilder {
	lines := make([]map[string]any, len(items))

	for i, item := range items {
		lines[i] = item.payload()
	}

	b.payload["items"] = lines

	return b
}

// NewPayment creates a payment for an order.
func NewPayment(orderID, method string, amount float64) *PayloadBuilder {
	return newPayload(map[string]any{
		"order_id":       orderID,
		"payment_method": method,
		"amount":         amount,
		"currency":       "USD",
	})
}

// WithTestCard attaches the standard test card details.
func (b *PayloadBuilder) WithTestCard() *PayloadBuilder {
	b.payload["payment_details"] = map[string]any{
		"card_number": "4111111111111111",
		"expiry":      "12/2025",
		"cvv":         "123",
	}

	return b
}

// NewRefund creates a partial refund payload.
func NewRefund(amount float64, reason string) *PayloadBuilder {
	return newPayload(map[string]any{
		"amount": amount,
		"reason": reason,
	})
}

// NewProfile creates a user profile update.
func NewProfile(email string) *PayloadBuilder {
	return newPayload(map[string]any{
		"first_name":   "Test",
		"last_name":    "User",
		"email":        email,
		"phone_number": "+13124029005",
		"preferences": map[string]any{
			"dietary_restrictions": []string{"vegetarian"},
			"allergies":            []string{"nuts"},
			"favorite_items":       []string{"item-001"},
		},
	})
}

// NewPreferences creates a user preferences update.
func NewPreferences() *PayloadBuilder {
	return newPayload(map[string]any{
		"dietary_restrictions": []string{"vegetarian", "gluten-free"},
		"allergies":            []string{"nuts", "shellfish"},
		"favorite_items":       []string{"item-001", "item-002"},
		"notification_settings": map[string]any{
			"email_notifications": true,
			"sms_notifications":   false,
			"push_notifications":  true,
		},
	})
}

// NewFavorite adds a menu item to the user's favorites.
func NewFavorite(itemID string) *PayloadBuilder {
	return newPayload(map[string]any{
		"item_id": itemID,
	})
}
