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

import "strings"

// EscapeBraces escapes brace tokens such as {foo} in documentation comment
// lines, so the documentation renderer treats them as literal text instead of
// template syntax. Tokens inside a backtick-delimited code span are left
// untouched, as are tokens already escaped and the Ruby interpolation forms
// #{...} and ${...}.
//
// The transform is a pure text-to-text function and a fixed point of itself:
// running it on its own output changes nothing, because an escaped brace is
// preceded by a backslash and no longer qualifies as a token.
func EscapeBraces(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = escapeBracesLine(line)
	}
	return strings.Join(lines, "\n")
}

// escapeBracesLine rewrites a single line. Only indented comment lines are
// candidates; file-header comments start at column zero and are therefore
// never touched. The scanner has two states, inside and outside a code span,
// toggled on each backtick. After an unmatched backtick the rest of the line
// counts as inside a code span, so nothing that might be quoted is modified.
func escapeBracesLine(line string) string {
	if !isCommentLine(line) {
		return line
	}
	var out []byte
	inCode := false
	for i := 0; i < len(line); {
		c := line[i]
		if c == '`' {
			inCode = !inCode
			out = append(out, c)
			i++
			continue
		}
		if c == '{' && !inCode && escapableAt(line, i) {
			if end, ok := braceTokenEnd(line, i); ok {
				out = append(out, '\\')
				out = append(out, line[i:end]...)
				i = end
				continue
			}
		}
		out = append(out, c)
		i++
	}
	if out == nil {
		return line
	}
	return string(out)
}

// isCommentLine reports whether the line is an indented `#` comment.
func isCommentLine(line string) bool {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i > 0 && i < len(line) && line[i] == '#'
}

// escapableAt reports whether the brace at position i may be escaped, based
// on the preceding character: an existing escape blocks re-escaping (this is
// what makes the transform idempotent), and `#{` / `${` are interpolation
// forms, not documentation links.
func escapableAt(line string, i int) bool {
	if i == 0 {
		return false
	}
	switch line[i-1] {
	case '\\', '#', '$', '`':
		return false
	}
	return true
}

// braceTokenEnd returns the position just past a brace token starting at i,
// which must hold `{`. A token is one or more word or comma characters
// followed by `}`.
func braceTokenEnd(line string, i int) (int, bool) {
	j := i + 1
	for j < len(line) && isWordOrComma(line[j]) {
		j++
	}
	if j == i+1 || j >= len(line) || line[j] != '}' {
		return 0, false
	}
	return j + 1, true
}

func isWordOrComma(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == ',':
		return true
	}
	return false
}
