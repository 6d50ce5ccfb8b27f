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

package ruby

import (
	"fmt"
	"regexp"

	"github.com/googleapis/synthtool/internal/config"
	"github.com/googleapis/synthtool/internal/external"
	"github.com/googleapis/synthtool/internal/postprocess"
)

var (
	gaxDependency = regexp.MustCompile(`\n  gem\.add_dependency "google-gax", "~> ([\d.]+)"\n\n`)
	// https://github.com/googleapis/gapic-generator/issues/2232
	operationsClient = regexp.MustCompile(`\n\n(\s+)class OperationsClient < Google::Longrunning::OperationsClient`)
	// https://github.com/googleapis/gapic-generator/issues/2243
	stubReader = regexp.MustCompile(`(\n\s+class \w+Client\n)(\s+)(attr_reader :\w+_stub)`)
	// https://github.com/googleapis/gapic-generator/issues/2393
	rubocopDependency = regexp.MustCompile(`(?m)^(\s*)gem\.add_development_dependency "rubocop".*$`)
)

// NewPipeline builds the ordered post-processing pipeline for a library.
// generated maps each version name to the directory artman produced for it;
// every version in lib.Versions must be present. When runPartials is true
// the final step regenerates the handwritten partials with bundler.
func NewPipeline(lib *config.Library, generated map[string]string, runPartials bool) (*postprocess.Pipeline, error) {
	if len(lib.Versions) == 0 {
		return nil, fmt.Errorf("library %s has no versions", lib.Service)
	}
	for _, v := range lib.Versions {
		if generated[v.Name] == "" {
			return nil, fmt.Errorf("no generated output for version %s", v.Name)
		}
	}
	svc := ServicePath(lib.Service)
	gemspec := lib.Distribution + ".gemspec"
	p := &postprocess.Pipeline{}

	// The first listed version contributes the files shared by all versions:
	// the entry point, README, license and gemspec. Later versions contribute
	// only their own lib/ and test/ subtrees.
	for i, v := range lib.Versions {
		version := v.Name
		src := generated[version]
		entries := []postprocess.CopyEntry{
			{Path: fmt.Sprintf("lib/google/cloud/%s/%s.rb", svc, version)},
			{Path: fmt.Sprintf("lib/google/cloud/%s/%s", svc, version)},
			{Path: fmt.Sprintf("test/google/cloud/%s/%s", svc, version)},
		}
		if i == 0 {
			entries = append(entries,
				postprocess.CopyEntry{Path: fmt.Sprintf("lib/google/cloud/%s.rb", svc)},
				postprocess.CopyEntry{Path: "README.md"},
				postprocess.CopyEntry{Path: "LICENSE"},
				postprocess.CopyEntry{Path: ".gitignore"},
				postprocess.CopyEntry{Path: ".yardopts"},
				postprocess.CopyEntry{Path: gemspec, Merge: postprocess.MergeGemspec},
			)
		}
		p.Add("copy "+version, func(ws *postprocess.Workspace) error {
			return ws.CopyFrom(src, entries...)
		})
	}

	// https://github.com/googleapis/gapic-generator/issues/2180
	p.Add("add iam dependency", func(ws *postprocess.Workspace) error {
		return postprocess.Replace(ws, []string{gemspec}, gaxDependency,
			"\n  gem.add_dependency \"google-gax\", \"~> ${1}\"\n  gem.add_dependency \"grpc-google-iam-v1\", \"~> 0.6.9\"\n\n")
	})
	p.Add("mark operations client private", func(ws *postprocess.Workspace) error {
		globs := []string{fmt.Sprintf("lib/google/cloud/%s/**/%s_service_client.rb", svc, svc)}
		return postprocess.Replace(ws, globs, operationsClient,
			"\n\n${1}# @private\n${1}class OperationsClient < Google::Longrunning::OperationsClient")
	})
	// https://github.com/googleapis/gapic-generator/issues/2242
	p.Add("escape braces", func(ws *postprocess.Workspace) error {
		globs := []string{fmt.Sprintf("lib/google/cloud/%s/**/*.rb", svc)}
		return postprocess.Transform(ws, globs, postprocess.EscapeBraces)
	})
	p.Add("mark stubs private", func(ws *postprocess.Workspace) error {
		globs := []string{fmt.Sprintf("lib/google/cloud/%s/*/*_client.rb", svc)}
		return postprocess.Replace(ws, globs, stubReader, "${1}${2}# @private\n${2}${3}")
	})
	// https://github.com/googleapis/gapic-generator/issues/2279
	p.Add("widen header spacing", func(ws *postprocess.Workspace) error {
		return postprocess.Transform(ws, []string{"lib/**/*.rb"}, postprocess.EnsureHeaderSpacing)
	})
	// https://github.com/googleapis/gapic-generator/issues/2323
	p.Add("fix repository links", func(ws *postprocess.Workspace) error {
		globs := []string{"lib/**/*.rb", "README.md"}
		if err := postprocess.ReplaceLiteral(ws, globs,
			"https://github.com/GoogleCloudPlatform/google-cloud-ruby",
			"https://github.com/googleapis/google-cloud-ruby"); err != nil {
			return err
		}
		return postprocess.ReplaceLiteral(ws, globs,
			"https://googlecloudplatform.github.io/google-cloud-ruby",
			"https://googleapis.github.io/google-cloud-ruby")
	})
	p.Add("promote readme badge", func(ws *postprocess.Workspace) error {
		return postprocess.ReplaceLiteral(ws, []string{"README.md"},
			fmt.Sprintf("# Ruby Client for %s ([Alpha](https://github.com/googleapis/google-cloud-ruby#versioning))", lib.DisplayName),
			fmt.Sprintf("# Ruby Client for %s ([Beta](https://github.com/googleapis/google-cloud-ruby#versioning))", lib.DisplayName))
	})
	p.Add("pin rubocop", func(ws *postprocess.Workspace) error {
		return postprocess.Replace(ws, []string{gemspec}, rubocopDependency,
			`${1}gem.add_development_dependency "rubocop", "~> 0.64.0"`)
	})
	p.Add("require helpers", func(ws *postprocess.Workspace) error {
		for _, v := range lib.Versions {
			entry := fmt.Sprintf("lib/google/cloud/%s/%s.rb", svc, v.Name)
			clientRequire := fmt.Sprintf("require \"google/cloud/%s/%s/%s_service_client\"", svc, v.Name, svc)
			helperRequire := fmt.Sprintf("require \"google/cloud/%s/%s/helpers\"", svc, v.Name)
			if err := postprocess.ReplaceLiteral(ws, []string{entry},
				clientRequire, clientRequire+"\n"+helperRequire); err != nil {
				return err
			}
		}
		return nil
	})
	if runPartials {
		p.Add("generate partials", func(ws *postprocess.Workspace) error {
			if err := external.RunIn(ws.Root, "bundle", "update"); err != nil {
				return err
			}
			return external.RunIn(ws.Root, "bundle", "exec", "rake", "generate_partials")
		})
	}
	return p, nil
}
