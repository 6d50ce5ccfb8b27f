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
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestReplace(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{
		"lib/a.rb": "class AssetClient\n  attr_reader :asset_stub\nend\n",
		"lib/b.rb": "nothing to see\n",
	})
	re := regexp.MustCompile(`(?m)^(\s+)(attr_reader :\w+_stub)$`)
	if err := Replace(ws, []string{"lib/*.rb"}, re, "${1}# @private\n${1}${2}"); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got, err := ws.ReadFile("lib/a.rb")
	if err != nil {
		t.Fatal(err)
	}
	want := "class AssetClient\n  # @private\n  attr_reader :asset_stub\nend\n"
	if got != want {
		t.Errorf("Replace() produced %q, want %q", got, want)
	}
	// The file without a match is untouched.
	got, err = ws.ReadFile("lib/b.rb")
	if err != nil {
		t.Fatal(err)
	}
	if got != "nothing to see\n" {
		t.Errorf("Replace() modified a non-matching file: %q", got)
	}
}

func TestReplaceNoContentMatch(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{"lib/a.rb": "nothing\n"})
	re := regexp.MustCompile(`attr_reader :\w+_stub`)
	err := Replace(ws, []string{"lib/*.rb"}, re, "unused")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Replace() error = %v, want ErrNoMatch", err)
	}
}

func TestReplaceNoFileMatch(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{"README.md": "readme"})
	re := regexp.MustCompile(`anything`)
	if err := Replace(ws, []string{"lib/*.rb"}, re, "unused"); err == nil {
		t.Error("Replace() succeeded with no matching files, want error")
	}
}

func TestReplaceLiteral(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{
		"lib/a.rb":  "see https://github.com/GoogleCloudPlatform/google-cloud-ruby\n",
		"README.md": "see https://github.com/GoogleCloudPlatform/google-cloud-ruby twice, https://github.com/GoogleCloudPlatform/google-cloud-ruby\n",
	})
	err := ReplaceLiteral(ws, []string{"lib/*.rb", "README.md"},
		"https://github.com/GoogleCloudPlatform/google-cloud-ruby",
		"https://github.com/googleapis/google-cloud-ruby")
	if err != nil {
		t.Fatalf("ReplaceLiteral() error = %v", err)
	}
	for _, name := range []string{"lib/a.rb", "README.md"} {
		got, err := ws.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(got, "GoogleCloudPlatform") {
			t.Errorf("ReplaceLiteral() left old host in %s: %q", name, got)
		}
	}
}

func TestReplaceLiteralNoMatch(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{"README.md": "readme"})
	err := ReplaceLiteral(ws, []string{"README.md"}, "absent", "unused")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("ReplaceLiteral() error = %v, want ErrNoMatch", err)
	}
}

func TestTransform(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{
		"lib/a.rb": "  # a {token} here\n",
		"lib/b.rb": "plain\n",
	})
	if err := Transform(ws, []string{"lib/*.rb"}, EscapeBraces); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	got, err := ws.ReadFile("lib/a.rb")
	if err != nil {
		t.Fatal(err)
	}
	if want := "  # a \\{token} here\n"; got != want {
		t.Errorf("Transform() produced %q, want %q", got, want)
	}
}

func TestTransformNoChangeIsFine(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{"lib/a.rb": "plain\n"})
	if err := Transform(ws, []string{"lib/*.rb"}, EscapeBraces); err != nil {
		t.Errorf("Transform() error = %v, want nil for a no-op", err)
	}
}
