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

// Package metadata records the inputs of a synthesis run in the library's
// synth.metadata file and renders the commit message describing the run.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "embed"

	"github.com/cbroglie/mustache"
	"github.com/googleapis/synthtool/internal/config"
	"github.com/googleapis/synthtool/internal/ruby"
)

// Filename is the metadata file written at the library root.
const Filename = "synth.metadata"

// Metadata describes one synthesis run: when it happened, which inputs
// produced the generated code, and which clients it wrote.
type Metadata struct {
	UpdateTime   time.Time     `json:"updateTime"`
	Sources      []Source      `json:"sources"`
	Destinations []Destination `json:"destinations"`
}

// Source is a single input to the run. Exactly one field is set.
type Source struct {
	Git       *GitSource       `json:"git,omitempty"`
	Generator *GeneratorSource `json:"generator,omitempty"`
}

// GitSource pins a git repository input to the commit that was used.
type GitSource struct {
	Name   string `json:"name"`
	Remote string `json:"remote"`
	SHA    string `json:"sha"`
}

// GeneratorSource names the code generator image that produced the output.
type GeneratorSource struct {
	Name        string `json:"name"`
	DockerImage string `json:"dockerImage"`
}

// Destination is a single output of the run.
type Destination struct {
	Client *ClientDestination `json:"client,omitempty"`
}

// ClientDestination describes one generated client library version.
type ClientDestination struct {
	Source     string `json:"source"`
	APIName    string `json:"apiName"`
	APIVersion string `json:"apiVersion"`
	Language   string `json:"language"`
	Generator  string `json:"generator"`
}

// New builds the metadata for a run that generated every version of lib from
// the googleapis checkout at googleapisSHA, using the given generator image.
func New(lib *config.Library, googleapisSHA, image string, updateTime time.Time) *Metadata {
	m := &Metadata{
		UpdateTime: updateTime.UTC(),
		Sources: []Source{
			{Generator: &GeneratorSource{Name: "artman", DockerImage: image}},
			{Git: &GitSource{Name: "googleapis", Remote: config.GoogleapisURL, SHA: googleapisSHA}},
		},
	}
	for _, v := range lib.Versions {
		m.Destinations = append(m.Destinations, Destination{
			Client: &ClientDestination{
				Source:     "googleapis",
				APIName:    lib.Service,
				APIVersion: v.Name,
				Language:   "ruby",
				Generator:  "gapic",
			},
		})
	}
	return m
}

// Write stores the metadata as synth.metadata under dir.
func (m *Metadata) Write(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	filename := filepath.Join(dir, Filename)
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", Filename, err)
	}
	return nil
}

//go:embed commit.mustache
var commitTemplate string

// CommitMessage renders the commit and pull request message for a run.
func CommitMessage(lib *config.Library, googleapisSHA, image string) (string, error) {
	versions := make([]string, 0, len(lib.Versions))
	for _, v := range lib.Versions {
		versions = append(versions, v.Name)
	}
	return mustache.Render(commitTemplate, map[string]string{
		"namespace": ruby.Namespace(lib.Service),
		"display":   lib.DisplayName,
		"versions":  strings.Join(versions, ", "),
		"sha":       googleapisSHA,
		"image":     image,
	})
}
