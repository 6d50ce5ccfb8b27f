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
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed prod/repositories.yaml
var prodRepositoriesYaml []byte

var availableCommands = map[string]bool{
	"synthesize": true,
}

// RepositoryConfig represents a single registered client library repository.
type RepositoryConfig struct {
	Name              string   `yaml:"name"`
	Owner             string   `yaml:"owner"`
	SecretName        string   `yaml:"github-token-secret-name"`
	SupportedCommands []string `yaml:"supported-commands"`
}

// RepositoriesConfig represents all the registered client library repositories.
type RepositoriesConfig struct {
	Repositories []*RepositoryConfig `yaml:"repositories"`
}

// GitURL returns the HTTPS clone URL for the repository.
func (c *RepositoryConfig) GitURL() (string, error) {
	if c.Name == "" || c.Owner == "" {
		return "", fmt.Errorf("repository has no owner/name")
	}
	return fmt.Sprintf("https://github.com/%s/%s", c.Owner, c.Name), nil
}

// Validate checks that the RepositoryConfig is valid.
func (c *RepositoryConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if c.SecretName == "" {
		return fmt.Errorf("secret name is required")
	}
	if len(c.SupportedCommands) == 0 {
		return fmt.Errorf("supported commands cannot be empty")
	}
	for _, command := range c.SupportedCommands {
		if !availableCommands[command] {
			return fmt.Errorf("unsupported command: %s", command)
		}
	}
	return nil
}

// Validate checks that the RepositoriesConfig is valid.
func (c *RepositoriesConfig) Validate() error {
	for i, r := range c.Repositories {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid repository config at index %d: %w", i, err)
		}
	}
	return nil
}

// RepositoriesForCommand returns the subset of repositories that support the
// provided command.
func (c *RepositoriesConfig) RepositoriesForCommand(command string) []*RepositoryConfig {
	var repositories []*RepositoryConfig
	for _, r := range c.Repositories {
		if slices.Contains(r.SupportedCommands, command) {
			repositories = append(repositories, r)
		}
	}
	return repositories
}

func parseRepositoriesConfig(contents []byte) (*RepositoriesConfig, error) {
	var c RepositoriesConfig
	if err := yaml.Unmarshal(contents, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling repositories config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating repositories config: %w", err)
	}
	return &c, nil
}

func loadRepositoriesConfig() (*RepositoriesConfig, error) {
	return parseRepositoriesConfig(prodRepositoriesYaml)
}
