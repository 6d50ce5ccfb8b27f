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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const assetConfig = `
service = "asset"
display-name = "Cloud Asset"
distribution = "google-cloud-asset"

[[versions]]
name = "v1"
config = "artman_cloudasset_v1.yaml"

[[versions]]
name = "v1beta1"
config = "artman_cloudasset_v1beta1.yaml"
`

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), LibraryFile)
	if err := os.WriteFile(filename, []byte(assetConfig), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(filename)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &Library{
		Service:          "asset",
		DisplayName:      "Cloud Asset",
		Distribution:     "google-cloud-asset",
		ArtmanOutputName: "google-cloud-ruby/google-cloud-asset",
		Versions: []Version{
			{Name: "v1", Config: "artman_cloudasset_v1.yaml"},
			{Name: "v1beta1", Config: "artman_cloudasset_v1beta1.yaml"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatched library config (-want, +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), LibraryFile)); err == nil {
		t.Error("Load() succeeded for a missing file, want error")
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name    string
		library *Library
		wantErr bool
	}{
		{
			name: "valid",
			library: &Library{
				Service:      "asset",
				DisplayName:  "Cloud Asset",
				Distribution: "google-cloud-asset",
				Versions:     []Version{{Name: "v1", Config: "artman_cloudasset_v1.yaml"}},
			},
		},
		{
			name: "missing service",
			library: &Library{
				DisplayName:  "Cloud Asset",
				Distribution: "google-cloud-asset",
				Versions:     []Version{{Name: "v1", Config: "artman_cloudasset_v1.yaml"}},
			},
			wantErr: true,
		},
		{
			name: "missing display name",
			library: &Library{
				Service:      "asset",
				Distribution: "google-cloud-asset",
				Versions:     []Version{{Name: "v1", Config: "artman_cloudasset_v1.yaml"}},
			},
			wantErr: true,
		},
		{
			name: "missing distribution",
			library: &Library{
				Service:     "asset",
				DisplayName: "Cloud Asset",
				Versions:    []Version{{Name: "v1", Config: "artman_cloudasset_v1.yaml"}},
			},
			wantErr: true,
		},
		{
			name: "no versions",
			library: &Library{
				Service:      "asset",
				DisplayName:  "Cloud Asset",
				Distribution: "google-cloud-asset",
			},
			wantErr: true,
		},
		{
			name: "version without name",
			library: &Library{
				Service:      "asset",
				DisplayName:  "Cloud Asset",
				Distribution: "google-cloud-asset",
				Versions:     []Version{{Config: "artman_cloudasset_v1.yaml"}},
			},
			wantErr: true,
		},
		{
			name: "version without config",
			library: &Library{
				Service:      "asset",
				DisplayName:  "Cloud Asset",
				Distribution: "google-cloud-asset",
				Versions:     []Version{{Name: "v1"}},
			},
			wantErr: true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := test.library.Validate()
			if test.wantErr && err == nil {
				t.Error("Validate() succeeded, want error")
			}
			if !test.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}
