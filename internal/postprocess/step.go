// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postprocess

import (
	"fmt"
	"log/slog"
)

// Step is one named stage of a patch pipeline.
type Step struct {
	// Name identifies the step in logs and in the error reported when the
	// pipeline aborts.
	Name string

	// Run applies the step to the workspace.
	Run func(ws *Workspace) error
}

// Pipeline is an ordered sequence of steps. Ordering is a correctness
// requirement: later steps patch the file state left by earlier ones.
type Pipeline struct {
	steps []Step
}

// Add appends a named step to the pipeline.
func (p *Pipeline) Add(name string, run func(ws *Workspace) error) {
	p.steps = append(p.steps, Step{Name: name, Run: run})
}

// Steps returns the names of the registered steps, in execution order.
func (p *Pipeline) Steps() []string {
	var names []string
	for _, s := range p.steps {
		names = append(names, s.Name)
	}
	return names
}

// Run executes every step in order, stopping at the first failure. The
// returned error names the failing step; the workspace is left as that step
// left it, for the operator to inspect, re-run, or discard.
func (p *Pipeline) Run(ws *Workspace) error {
	for _, step := range p.steps {
		slog.Info("running step", "step", step.Name)
		if err := step.Run(ws); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}
	return nil
}
