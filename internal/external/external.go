// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package external runs the helper programs synthesis shells out to.
package external

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Run executes a program with its arguments, capturing output. On failure
// the combined output is folded into the returned error.
func Run(command string, arg ...string) error {
	return RunIn(".", command, arg...)
}

// RunIn is Run with the working directory set to dir.
func RunIn(dir, command string, arg ...string) error {
	cmd := exec.Command(command, arg...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%v: %w\n%s", cmd, err, output)
	}
	return nil
}

// Stream executes a program with stdout and stderr attached to the current
// process, framing the output with the command line. Long-running
// collaborators (docker, bundler) go through here so the operator can watch
// their progress.
func Stream(command string, arg ...string) error {
	cmd := exec.Command(command, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	slog.Info(strings.Repeat("=", 80))
	slog.Info(cmd.String())
	slog.Info(strings.Repeat("-", 80))
	err := cmd.Run()
	slog.Info(strings.Repeat("=", 80))
	return err
}
