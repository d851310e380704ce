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

// Package availability probes the remote kiosk API, classifies it as available
// or unavailable and discovers which of a fixed set of candidate endpoints are
// registered on it.
//
// A Validator is constructed once per logical check (a test session, or a single
// monitor tick) and owns all of its state.  It is not safe for concurrent use:
// the discovery cache is populated without synchronization.
//
// The root probe treats both 200 and 404 as "available": a server that answers at
// all is reachable, even when the root path is not a resource.  A load balancer that
// serves a 404 error page for a dead backend is therefore classified as available.
package availability
