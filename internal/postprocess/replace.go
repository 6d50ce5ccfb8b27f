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
	"fmt"
	"regexp"
	"strings"
)

// ErrNoMatch reports that a patch found nothing to rewrite. Patch steps
// target known generator defects, so a silent no-op would mean the generator
// output shifted and the patch is stale.
var ErrNoMatch = errors.New("pattern matched no content")

// Replace applies a regular-expression rewrite to every file matched by the
// globs. At least one file must contain a match.
func Replace(ws *Workspace, globs []string, re *regexp.Regexp, replacement string) error {
	files, err := ws.Glob(globs...)
	if err != nil {
		return err
	}
	matched := false
	for _, file := range files {
		contents, err := ws.ReadFile(file)
		if err != nil {
			return err
		}
		if !re.MatchString(contents) {
			continue
		}
		matched = true
		if err := ws.WriteFile(file, re.ReplaceAllString(contents, replacement)); err != nil {
			return err
		}
	}
	if !matched {
		return fmt.Errorf("%q in %v: %w", re, globs, ErrNoMatch)
	}
	return nil
}

// ReplaceLiteral substitutes a fixed string across every file matched by the
// globs. At least one file must contain the old string.
func ReplaceLiteral(ws *Workspace, globs []string, old, new string) error {
	files, err := ws.Glob(globs...)
	if err != nil {
		return err
	}
	matched := false
	for _, file := range files {
		contents, err := ws.ReadFile(file)
		if err != nil {
			return err
		}
		if !strings.Contains(contents, old) {
			continue
		}
		matched = true
		if err := ws.WriteFile(file, strings.ReplaceAll(contents, old, new)); err != nil {
			return err
		}
	}
	if !matched {
		return fmt.Errorf("%q in %v: %w", old, globs, ErrNoMatch)
	}
	return nil
}

// Transform rewrites every file matched by the globs through fn. Unlike
// Replace, fn leaving a file unchanged is a normal outcome, not a failure:
// transforms such as brace escaping legitimately have nothing to do on most
// files.
func Transform(ws *Workspace, globs []string, fn func(string) string) error {
	files, err := ws.Glob(globs...)
	if err != nil {
		return err
	}
	for _, file := range files {
		contents, err := ws.ReadFile(file)
		if err != nil {
			return err
		}
		rewritten := fn(contents)
		if rewritten == contents {
			continue
		}
		if err := ws.WriteFile(file, rewritten); err != nil {
			return err
		}
	}
	return nil
}
