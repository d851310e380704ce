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
	"context"
	"slices"

	"github.com/onsi/ginkgo/v2"
)

// LabelAPIRequired marks specs that are skipped when the API is unavailable.
const LabelAPIRequired = "api-required"

// APIRequired is a ginkgo decorator for API dependent containers and specs.
//
//nolint:gochecknoglobals
var APIRequired = ginkgo.Label(LabelAPIRequired)

// RequirementOf maps spec labels to a requirement.
func RequirementOf(labels []string) Requirement {
	if slices.Contains(labels, LabelAPIRequired) {
		return RequiresAPI
	}

	return None
}

// SkipUnlessAvailable skips the current spec when the API is unavailable.
func (g *Gate) SkipUnlessAvailable(ctx context.Context) {
	if result := g.Guard(ctx); result.Outcome == Skip {
		ginkgo.Skip(result.Reason)
	}
}

// ApplyToSpec is installed in a top level BeforeEach, it skips the current spec
// when it carries LabelAPIRequired and the API is unavailable.  Unlabelled specs
// are untouched.
func (g *Gate) ApplyToSpec(ctx context.Context) {
	requirement := RequirementOf(ginkgo.CurrentSpecReport().Labels())

	if result := g.Decide(ctx, requirement); result.Outcome == Skip {
		ginkgo.Skip(result.Reason)
	}
}
