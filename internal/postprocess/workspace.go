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

// Package postprocess applies ordered textual patches to generated source
// trees. A Workspace is the root of the tree being patched; steps receive it,
// mutate files in place, and report errors that abort the whole pipeline.
package postprocess

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Workspace is a handle on the directory tree being patched. All paths used
// by steps are slash-separated and relative to Root.
type Workspace struct {
	Root string
}

// NewWorkspace returns a Workspace rooted at the given directory, which must
// exist.
func NewWorkspace(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", abs)
	}
	return &Workspace{Root: abs}, nil
}

// Glob returns the files matching any of the patterns, sorted and without
// duplicates. Patterns support `**` for any number of path segments. A
// pattern matching no file at all is an error: every patch step targets
// freshly generated output, so an empty match means the generator layout
// changed underneath us.
func (w *Workspace) Glob(patterns ...string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matched := false
		err := fs.WalkDir(os.DirFS(w.Root), ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ok, err := Match(pattern, p)
			if err != nil {
				return err
			}
			if ok {
				matched = true
				if !seen[p] {
					seen[p] = true
					files = append(files, p)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, fmt.Errorf("glob %q matched no files under %s", pattern, w.Root)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Match reports whether a slash-separated relative path matches the pattern.
// Each pattern segment uses path.Match syntax; the segment `**` matches any
// number of path segments, including none.
func Match(pattern, name string) (bool, error) {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) (bool, error) {
	if len(pattern) == 0 {
		return len(name) == 0, nil
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(name); i++ {
			ok, err := matchSegments(pattern[1:], name[i:])
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	if len(name) == 0 {
		return false, nil
	}
	ok, err := path.Match(pattern[0], name[0])
	if err != nil || !ok {
		return ok, err
	}
	return matchSegments(pattern[1:], name[1:])
}

// ReadFile returns the contents of a file relative to the workspace root.
func (w *Workspace) ReadFile(rel string) (string, error) {
	contents, err := os.ReadFile(filepath.Join(w.Root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// WriteFile replaces the contents of a file relative to the workspace root,
// creating parent directories as needed and preserving the mode of an
// existing file.
func (w *Workspace) WriteFile(rel string, contents string) error {
	filename := filepath.Join(w.Root, filepath.FromSlash(rel))
	mode := os.FileMode(0644)
	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode()
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(contents), mode)
}

// CopyEntry names one generated path to bring into the workspace. When Merge
// is set, the destination (if present) and the freshly generated contents are
// combined by the function instead of the source simply overwriting the
// destination.
type CopyEntry struct {
	Path  string
	Merge func(existing, generated string) string
}

// CopyFrom copies the named subpaths of srcRoot into the workspace,
// overwriting existing files. A subpath may be a file or a directory. A
// missing subpath is a hard error: the run must abort before any later patch
// step executes against an incomplete tree.
func (w *Workspace) CopyFrom(srcRoot string, entries ...CopyEntry) error {
	for _, entry := range entries {
		src := filepath.Join(srcRoot, filepath.FromSlash(entry.Path))
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("generated path %s: %w", entry.Path, err)
		}
		if info.IsDir() {
			if err := w.copyTree(src, entry.Path); err != nil {
				return fmt.Errorf("copying %s: %w", entry.Path, err)
			}
			continue
		}
		if err := w.copyFile(src, entry); err != nil {
			return fmt.Errorf("copying %s: %w", entry.Path, err)
		}
	}
	return nil
}

func (w *Workspace) copyTree(src, rel string) error {
	return fs.WalkDir(os.DirFS(src), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return w.copyFile(filepath.Join(src, filepath.FromSlash(p)), CopyEntry{Path: path.Join(rel, p)})
	})
}

func (w *Workspace) copyFile(src string, entry CopyEntry) error {
	contents, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	generated := string(contents)
	if entry.Merge != nil {
		if existing, err := w.ReadFile(entry.Path); err == nil {
			generated = entry.Merge(existing, generated)
		}
	}
	return w.WriteFile(entry.Path, generated)
}
