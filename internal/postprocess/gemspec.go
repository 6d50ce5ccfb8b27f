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

import "regexp"

var (
	gemspecVersion = regexp.MustCompile(`(?m)^(\s*gem\.version\s*=\s*).*$`)
	gemspecDate    = regexp.MustCompile(`(?m)^(\s*gem\.date\s*=\s*).*$`)
)

// MergeGemspec combines a freshly generated gemspec with the one already in
// the repository. The generated file wins everywhere except the version and
// date lines: those are release metadata owned by the repository, and the
// generator always resets them.
func MergeGemspec(existing, generated string) string {
	merged := generated
	for _, re := range []*regexp.Regexp{gemspecVersion, gemspecDate} {
		keep := re.FindString(existing)
		if keep == "" || !re.MatchString(merged) {
			continue
		}
		// Replace only the first occurrence; gemspecs declare each field
		// once.
		replaced := false
		merged = re.ReplaceAllStringFunc(merged, func(match string) string {
			if replaced {
				return match
			}
			replaced = true
			return keep
		})
	}
	return merged
}
