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

package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	const (
		testImage = "googleapis/artman:0.16.26"
		testUID   = "1000"
		testGID   = "1001"
	)
	g := New(testImage, testUID, testGID)
	if g.Image != testImage {
		t.Errorf("g.Image = %q, want %q", g.Image, testImage)
	}
	if g.uid != testUID {
		t.Errorf("g.uid = %q, want %q", g.uid, testUID)
	}
	if g.gid != testGID {
		t.Errorf("g.gid = %q, want %q", g.gid, testGID)
	}
	if g.run == nil {
		t.Error("g.run is nil")
	}
}

// writeArtmanConfig writes a minimal artman config under apiRoot and returns
// its path relative to apiRoot.
func writeArtmanConfig(t *testing.T, apiRoot, version string) string {
	t.Helper()
	rel := "google/cloud/asset/artman_cloudasset_" + version + ".yaml"
	path := filepath.Join(apiRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	content := "common:\n  api_name: cloudasset\n  api_version: " + version + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return rel
}

func TestGenerate(t *testing.T) {
	const testImage = "googleapis/artman:0.16.26"
	apiRoot := t.TempDir()
	output := t.TempDir()
	configPath := writeArtmanConfig(t, apiRoot, "v1")

	request := &Request{
		Service:          "cloudasset",
		Version:          "v1",
		ConfigPath:       configPath,
		APIRoot:          apiRoot,
		Output:           output,
		ArtmanOutputName: "google-cloud-ruby/google-cloud-asset",
	}

	var gotArgs []string
	g := New(testImage, "1000", "1001")
	g.run = func(args ...string) error {
		gotArgs = args
		// Simulate artman leaving the generated library in place.
		dir := filepath.Join(output, "google-cloud-ruby", "google-cloud-asset")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, "Gemfile"), []byte("source \"https://rubygems.org\"\n"), 0644)
	}

	got, err := g.Generate(context.Background(), request)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := filepath.Join(output, "google-cloud-ruby", "google-cloud-asset")
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
	wantArgs := []string{
		"run", "--rm",
		"-v", apiRoot + ":/googleapis",
		"-v", output + ":/output",
		"--user", "1000:1001",
		testImage,
		"--config", "/googleapis/" + configPath,
		"--output-dir", "/output",
		"--root-dir", "/googleapis",
		"generate", "ruby_gapic",
	}
	if diff := cmp.Diff(wantArgs, gotArgs); diff != "" {
		t.Errorf("mismatched docker args (-want, +got):\n%s", diff)
	}
}

func TestGenerateConfigMismatch(t *testing.T) {
	apiRoot := t.TempDir()
	configPath := writeArtmanConfig(t, apiRoot, "v1")

	request := &Request{
		Service:    "cloudasset",
		Version:    "v1beta1",
		ConfigPath: configPath,
		APIRoot:    apiRoot,
		Output:     t.TempDir(),
	}
	g := New("googleapis/artman:latest", "", "")
	g.run = func(args ...string) error {
		t.Error("run called despite config mismatch")
		return nil
	}
	if _, err := g.Generate(context.Background(), request); err == nil {
		t.Error("Generate() succeeded with mismatched api_version")
	}
}

func TestGenerateMissingConfig(t *testing.T) {
	request := &Request{
		Service:    "cloudasset",
		Version:    "v1",
		ConfigPath: "no/such/config.yaml",
		APIRoot:    t.TempDir(),
		Output:     t.TempDir(),
	}
	g := New("googleapis/artman:latest", "", "")
	if _, err := g.Generate(context.Background(), request); err == nil {
		t.Error("Generate() succeeded with missing config")
	}
}

func TestGenerateRunFails(t *testing.T) {
	apiRoot := t.TempDir()
	configPath := writeArtmanConfig(t, apiRoot, "v1")
	request := &Request{
		Service:          "cloudasset",
		Version:          "v1",
		ConfigPath:       configPath,
		APIRoot:          apiRoot,
		Output:           t.TempDir(),
		ArtmanOutputName: "google-cloud-ruby/google-cloud-asset",
	}
	g := New("googleapis/artman:latest", "", "")
	g.run = func(args ...string) error {
		return errors.New("simulated container failure")
	}
	if _, err := g.Generate(context.Background(), request); err == nil {
		t.Error("Generate() succeeded despite container failure")
	}
}

func TestGenerateNoOutput(t *testing.T) {
	apiRoot := t.TempDir()
	configPath := writeArtmanConfig(t, apiRoot, "v1")
	request := &Request{
		Service:          "cloudasset",
		Version:          "v1",
		ConfigPath:       configPath,
		APIRoot:          apiRoot,
		Output:           t.TempDir(),
		ArtmanOutputName: "google-cloud-ruby/google-cloud-asset",
	}
	g := New("googleapis/artman:latest", "", "")
	g.run = func(args ...string) error {
		return nil
	}
	if _, err := g.Generate(context.Background(), request); err == nil {
		t.Error("Generate() succeeded despite empty output")
	}
}
