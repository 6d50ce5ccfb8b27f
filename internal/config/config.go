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

// Package config loads the per-library synthesis settings.
//
// Each library repository carries a `.synthtool.toml` file at its root,
// describing the service and the API versions to synthesize. The file plays
// the same role as the generator configuration saved next to generated code
// in other client-library pipelines.
package config

import (
	"fmt"
	"os"
	"path"

	toml "github.com/pelletier/go-toml/v2"
)

// LibraryFile is the name of the per-library configuration file, relative to
// the library repository root.
const LibraryFile = ".synthtool.toml"

// GoogleapisURL is the repository cloned when no local googleapis checkout
// is supplied.
const GoogleapisURL = "https://github.com/googleapis/googleapis"

// Library describes one client library to synthesize.
type Library struct {
	// Service is the short API name, e.g. "asset". It determines the
	// generated source layout under lib/google/cloud/<service>.
	Service string `toml:"service"`

	// DisplayName is the API product name used in the README, e.g.
	// "Cloud Asset".
	DisplayName string `toml:"display-name"`

	// Distribution is the gem name, e.g. "google-cloud-asset".
	Distribution string `toml:"distribution"`

	// ArtmanOutputName is the subdirectory of the generator output tree
	// holding the generated library. Defaults to
	// "google-cloud-ruby/<distribution>".
	ArtmanOutputName string `toml:"artman-output-name,omitempty"`

	// Versions lists the API versions to generate, in order. The first
	// version is the primary one: its generated tree also supplies the
	// repository-level files (README, LICENSE, gemspec, ...).
	Versions []Version `toml:"versions"`
}

// Version is a single API version and its generator configuration.
type Version struct {
	// Name is the version identifier, e.g. "v1" or "v1beta1".
	Name string `toml:"name"`

	// Config is the path of the artman configuration file for this
	// version, relative to the googleapis checkout root.
	Config string `toml:"config"`
}

// Load reads and validates a library configuration file.
func Load(filename string) (*Library, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading library config: %w", err)
	}
	library := &Library{}
	if err := toml.Unmarshal(contents, library); err != nil {
		return nil, fmt.Errorf("unmarshaling library config %s: %w", filename, err)
	}
	if err := library.Validate(); err != nil {
		return nil, fmt.Errorf("invalid library config %s: %w", filename, err)
	}
	if library.ArtmanOutputName == "" {
		library.ArtmanOutputName = path.Join("google-cloud-ruby", library.Distribution)
	}
	return library, nil
}

// Validate checks that the library configuration is complete.
func (l *Library) Validate() error {
	if l.Service == "" {
		return fmt.Errorf("service is required")
	}
	if l.DisplayName == "" {
		return fmt.Errorf("display-name is required")
	}
	if l.Distribution == "" {
		return fmt.Errorf("distribution is required")
	}
	if len(l.Versions) == 0 {
		return fmt.Errorf("at least one version is required")
	}
	for i, v := range l.Versions {
		if v.Name == "" {
			return fmt.Errorf("version at index %d has no name", i)
		}
		if v.Config == "" {
			return fmt.Errorf("version %q has no generator config file", v.Name)
		}
	}
	return nil
}
