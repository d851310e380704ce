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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultTestCommand runs every integration suite verbosely.
//
//nolint:gochecknoglobals
var DefaultTestCommand = []string{"go", "test", "./test/api/...", "-v", "-count=1"}

// CommandRunner runs the test suite as a child process.
type CommandRunner struct {
	// Command is the program and its arguments, DefaultTestCommand if empty.
	Command []string
	// Dir is the working directory, typically the repository root.
	Dir string
	// Env is appended to the current environment.
	Env []string
}

// Run executes the command and returns its combined output.
func (r *CommandRunner) Run(ctx context.Context) (string, error) {
	command := r.Command
	if len(command) == 0 {
		command = DefaultTestCommand
	}

	//nolint:gosec
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), r.Env...)

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output.String(), NewRunError(strings.Join(command, " "), exitErr.ExitCode(), output.String())
		}

		return output.String(), fmt.Errorf("running %s: %w", command[0], err)
	}

	return output.String(), nil
}
