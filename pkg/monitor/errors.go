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

package monitor

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule is returned for malformed daily times.
var ErrInvalidSchedule = errors.New("invalid schedule")

// RunError indicates the test suite ran to completion but reported failures.
type RunError struct {
	Command  string
	ExitCode int
	Output   string
}

func NewRunError(command string, exitCode int, output string) *RunError {
	return &RunError{
		Command:  command,
		ExitCode: exitCode,
		Output:   output,
	}
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// IsRunError checks if the error is a RunError.
func IsRunError(err error) bool {
	var e *RunError
	return errors.As(err, &e)
}

func asRunError(err error) (*RunError, bool) {
	var e *RunError
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}
