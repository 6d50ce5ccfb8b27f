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
	"regexp"
	"strings"
)

var headerMarker = regexp.MustCompile(`^# (Copyright \d+|Generated by the protocol buffer compiler)`)

// EnsureHeaderSpacing widens the gap between a file's leading
// license/"Generated by" comment block and the first line of code from one
// blank line to two. Any other gap (none, or already two or more blank
// lines) is left untouched, as are files without such a header block, so
// the transform is a fixed point of itself.
func EnsureHeaderSpacing(text string) string {
	lines := strings.Split(text, "\n")
	sawMarker := false
	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.HasPrefix(line, "#") {
			if headerMarker.MatchString(line) {
				sawMarker = true
			}
			i++
			continue
		}
		if line == "" && !sawMarker {
			i++
			continue
		}
		break
	}
	if !sawMarker || i >= len(lines) {
		return text
	}
	// i is the first line after the header comments. Only a gap of exactly
	// one blank line followed by code is rewritten.
	if lines[i] != "" || i+1 >= len(lines) || lines[i+1] == "" {
		return text
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:i+1]...)
	out = append(out, "")
	out = append(out, lines[i+1:]...)
	return strings.Join(out, "\n")
}
