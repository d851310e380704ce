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

// Package gate decides whether a test runs, fails or is skipped based on the
// availability of the kiosk API.  Availability is evaluated lazily once per gate,
// which is expected to live for a whole test session, and only tests that are
// annotated as requiring the API are ever skipped.
package gate

import (
	"context"
	"fmt"
	"sync"
)

// ReasonAPIUnavailable is the skip reason reported for gated tests.
const ReasonAPIUnavailable = "API unavailable"

// Outcome is the terminal state of a test.
type Outcome int

const (
	Pass Outcome = iota
	Fail
	Skip
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Skip:
		return "skip"
	}

	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is an outcome plus a human readable reason, empty for Pass.
type Result struct {
	Outcome Outcome
	Reason  string
}

func (r Result) String() string {
	if r.Reason == "" {
		return r.Outcome.String()
	}

	return r.Outcome.String() + ": " + r.Reason
}

// FromError maps a run time error to a result.  Request failures raised while a
// test executes are always failures, never skips.
func FromError(err error) Result {
	if err == nil {
		return Result{Outcome: Pass}
	}

	return Result{Outcome: Fail, Reason: err.Error()}
}

// Requirement annotates what a test needs in order to be meaningful.
type Requirement int

const (
	// None tests run regardless of availability.
	None Requirement = iota
	// RequiresAPI tests are skipped when the API is unavailable.
	RequiresAPI
)

//go:generate mockgen -source=gate.go -destination=mock/interfaces.go -package=mock

// AvailabilityChecker is satisfied by *availability.Validator.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context) bool
}

// Gate caches a single availability evaluation.
type Gate struct {
	checker AvailabilityChecker

	lock      sync.Mutex
	evaluated bool
	available bool
}

// New returns a gate that has not yet probed.
func New(checker AvailabilityChecker) *Gate {
	return &Gate{
		checker: checker,
	}
}

// Available returns the cached availability, probing on first use.
func (g *Gate) Available(ctx context.Context) bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	if !g.evaluated {
		g.available = g.checker.CheckAvailability(ctx)
		g.evaluated = true
	}

	return g.available
}

// Refresh discards the cached evaluation and probes again.
func (g *Gate) Refresh(ctx context.Context) bool {
	g.lock.Lock()
	g.evaluated = false
	g.lock.Unlock()

	return g.Available(ctx)
}

// Decide applies the gating rules to a test with the given requirement.  Tests
// without a requirement never trigger a probe.
func (g *Gate) Decide(ctx context.Context, requirement Requirement) Result {
	if requirement == None {
		return Result{Outcome: Pass}
	}

	return g.Guard(ctx)
}

// Guard is the explicit check helpers run before sending a request, so a skip
// is raised before any HTTP call is made.
func (g *Gate) Guard(ctx context.Context) Result {
	if !g.Available(ctx) {
		return Result{Outcome: Skip, Reason: ReasonAPIUnavailable}
	}

	return Result{Outcome: Pass}
}

// Summary tallies results.
type Summary struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Summarize counts the outcomes of a set of results.
func Summarize(results ...Result) Summary {
	var s Summary

	for _, r := range results {
		s.Add(r)
	}

	return s
}

// Add counts one result.
func (s *Summary) Add(r Result) {
	switch r.Outcome {
	case Pass:
		s.Passed++
	case Fail:
		s.Failed++
	case Skip:
		s.Skipped++
	}
}

// Total is the number of results counted.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Succeeded is true when nothing failed.  Skips are not failures.
func (s Summary) Succeeded() bool {
	return s.Failed == 0
}
