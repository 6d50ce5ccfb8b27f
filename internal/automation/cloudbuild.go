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

package automation

import (
	"context"
	"fmt"
	"iter"

	"cloud.google.com/go/cloudbuild/apiv1/v2/cloudbuildpb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/exp/slog"
)

// CloudBuildClient is the subset of the Cloud Build API the dispatcher
// needs, narrowed so tests can substitute a fake.
type CloudBuildClient interface {
	RunBuildTrigger(ctx context.Context, req *cloudbuildpb.RunBuildTriggerRequest, opts ...gax.CallOption) error
	ListBuildTriggers(ctx context.Context, req *cloudbuildpb.ListBuildTriggersRequest, opts ...gax.CallOption) iter.Seq2[*cloudbuildpb.BuildTrigger, error]
}

// dispatcher resolves trigger names and starts builds within a single
// project and location. Trigger IDs are cached, so a run over the whole
// repository registry lists the project's triggers at most once.
type dispatcher struct {
	client     CloudBuildClient
	project    string
	location   string
	triggerIDs map[string]string
}

func newDispatcher(client CloudBuildClient, project, location string) *dispatcher {
	return &dispatcher{
		client:     client,
		project:    project,
		location:   location,
		triggerIDs: make(map[string]string),
	}
}

func (d *dispatcher) parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", d.project, d.location)
}

// runTrigger resolves the named trigger and starts a build with the given
// substitutions.
func (d *dispatcher) runTrigger(ctx context.Context, name string, substitutions map[string]string) error {
	id, err := d.triggerID(ctx, name)
	if err != nil {
		return err
	}
	resource := fmt.Sprintf("%s/triggers/%s", d.parent(), id)
	req := &cloudbuildpb.RunBuildTriggerRequest{
		Name:      resource,
		ProjectId: d.project,
		TriggerId: id,
		Source: &cloudbuildpb.RepoSource{
			Substitutions: substitutions,
		},
	}
	slog.Info("triggering build", slog.String("trigger", resource))
	if err := d.client.RunBuildTrigger(ctx, req); err != nil {
		return fmt.Errorf("running trigger %q: %w", name, err)
	}
	return nil
}

// triggerID returns the ID of the named trigger, listing the project's
// triggers on the first miss and serving repeats from the cache.
func (d *dispatcher) triggerID(ctx context.Context, name string) (string, error) {
	if id, ok := d.triggerIDs[name]; ok {
		return id, nil
	}
	req := &cloudbuildpb.ListBuildTriggersRequest{
		Parent: d.parent(),
	}
	for trigger, err := range d.client.ListBuildTriggers(ctx, req) {
		if err != nil {
			return "", fmt.Errorf("listing triggers in %s: %w", d.parent(), err)
		}
		d.triggerIDs[trigger.Name] = trigger.Id
	}
	id, ok := d.triggerIDs[name]
	if !ok {
		return "", fmt.Errorf("no trigger named %q in %s", name, d.parent())
	}
	return id, nil
}
