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
	"net/http"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
)

// AuthHeaders returns the identity headers every kiosk request carries,
// plus a bearer token when one is given.
func AuthHeaders(realmID, appzID, token string) http.Header {
	header := http.Header{}
	header.Set(constants.RealmHeader, realmID)
	header.Set(constants.AppzHeader, appzID)

	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	return header
}

// AuthHeaders returns the identity headers for this configuration.
func (c Config) AuthHeaders(token string) http.Header {
	return AuthHeaders(c.RealmID, c.AppzID, token)
}
