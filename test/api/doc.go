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

// Package api is the integration test harness for the kiosk shopping API.
//
// # Separate Client Implementation
//
// The kiosk API publishes no machine readable contract, so APIClient is written
// by hand against the endpoint catalogue in Endpoints.  Every request carries the
// realm and application identity headers, an optional bearer token and a W3C
// trace context so a failing request can be found in the server logs.  Status
// codes are returned rather than treated as errors: suites decide which codes
// are acceptable, and staging commonly answers 404 for endpoints that are not
// deployed yet.
//
// # Availability
//
// A Session owns one availability validator and one gate.  Specs labelled
// gate.APIRequired, and requests sent through the session client, are skipped
// once the gate has found the API unreachable.  Any other request failure fails
// the test.
package api
