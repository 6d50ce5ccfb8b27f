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

// Package generator runs the artman code generator as a Docker container
// and locates the Ruby client library it produces.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/googleapis/synthtool/internal/external"
	"github.com/walle/targz"
	"gopkg.in/yaml.v3"
)

// Generator contains all the information required to run the artman
// Docker image.
type Generator struct {
	// The Docker image to run, e.g. "googleapis/artman:latest".
	Image string

	// The user ID to run the container as.
	uid string

	// The group ID to run the container as.
	gid string

	// run runs the docker command.
	run func(args ...string) error
}

// Request contains all the information required to generate one version of
// a client library.
type Request struct {
	// Service is the short API name, e.g. "cloudasset".
	Service string
	// Version is the API version to generate, e.g. "v1" or "v1beta1".
	Version string
	// ConfigPath is the artman config file, relative to the googleapis root.
	ConfigPath string
	// APIRoot is the local googleapis checkout mounted into the container.
	APIRoot string
	// Output is the directory artman writes its generated artifacts into.
	Output string
	// ArtmanOutputName is the subpath under Output where the generated Ruby
	// library lands, e.g. "google-cloud-ruby/google-cloud-asset".
	ArtmanOutputName string
}

// artmanConfig is the subset of an artman config file we sanity-check
// before paying for a container run.
type artmanConfig struct {
	Common struct {
		APIName    string `yaml:"api_name"`
		APIVersion string `yaml:"api_version"`
	} `yaml:"common"`
}

// New constructs a Generator which will invoke the specified artman
// Docker image.
func New(image, uid, gid string) *Generator {
	g := &Generator{
		Image: image,
		uid:   uid,
		gid:   gid,
	}
	g.run = func(args ...string) error {
		return external.Stream("docker", args...)
	}
	return g
}

// Generate runs artman for a single API version and returns the directory
// containing the generated Ruby library. The container's exit code is
// propagated: a non-zero exit fails the whole run.
func (g *Generator) Generate(ctx context.Context, request *Request) (string, error) {
	if err := checkConfig(request); err != nil {
		return "", err
	}
	if err := os.MkdirAll(request.Output, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"run",
		"--rm", // Automatically delete the container after completion
		"-v", fmt.Sprintf("%s:/googleapis", request.APIRoot),
		"-v", fmt.Sprintf("%s:/output", request.Output),
	}
	// Run as the current user in the container - primarily so that any files
	// we create end up being owned by the current user (and easily deletable).
	if g.uid != "" && g.gid != "" {
		args = append(args, "--user", fmt.Sprintf("%s:%s", g.uid, g.gid))
	}
	args = append(args,
		g.Image,
		"--config", "/googleapis/"+request.ConfigPath,
		"--output-dir", "/output",
		"--root-dir", "/googleapis",
		"generate", "ruby_gapic",
	)
	if err := g.run(args...); err != nil {
		return "", fmt.Errorf("artman generation failed for %s %s: %w", request.Service, request.Version, err)
	}
	return locateOutput(request)
}

// checkConfig parses the artman config file and verifies it describes the
// API version we are about to generate. Catching a mismatched config here
// is much cheaper than a container run producing the wrong library.
func checkConfig(request *Request) error {
	path := filepath.Join(request.APIRoot, filepath.FromSlash(request.ConfigPath))
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artman config: %w", err)
	}
	var cfg artmanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse artman config %s: %w", request.ConfigPath, err)
	}
	if cfg.Common.APIName == "" {
		return fmt.Errorf("artman config %s has no common.api_name", request.ConfigPath)
	}
	if cfg.Common.APIVersion != request.Version {
		return fmt.Errorf("artman config %s is for api_version %q, want %q", request.ConfigPath, cfg.Common.APIVersion, request.Version)
	}
	return nil
}

// locateOutput finds the generated library under artman's output layout.
// Some artman configurations leave a tarball rather than a directory; in
// that case we extract it in place first.
func locateOutput(request *Request) (string, error) {
	dir := filepath.Join(request.Output, filepath.FromSlash(request.ArtmanOutputName))
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return dir, nil
	}
	tarball := dir + ".tar.gz"
	if _, terr := os.Stat(tarball); terr == nil {
		if err := targz.Extract(tarball, filepath.Dir(dir)); err != nil {
			return "", fmt.Errorf("failed to extract generator output %s: %w", tarball, err)
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("generator produced no output at %s", dir)
}
