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

package gate

import (
	"testing"
)

// Require skips a standard library test when the API is unavailable.
func (g *Gate) Require(t testing.TB) {
	t.Helper()

	if result := g.Guard(t.Context()); result.Outcome == Skip {
		t.Skip(result.Reason)
	}
}
