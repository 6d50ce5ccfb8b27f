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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeGemspec(t *testing.T) {
	for _, test := range []struct {
		name      string
		existing  string
		generated string
		want      string
	}{
		{
			name: "version and date kept from existing",
			existing: `Gem::Specification.new do |gem|
  gem.name = "google-cloud-asset"
  gem.version = "0.3.0"
  gem.date = "2019-04-29"
end
`,
			generated: `Gem::Specification.new do |gem|
  gem.name = "google-cloud-asset"
  gem.version = "0.1.0"
  gem.date = "2019-01-01"
  gem.add_dependency "grpc-google-iam-v1", "~> 0.6.9"
end
`,
			want: `Gem::Specification.new do |gem|
  gem.name = "google-cloud-asset"
  gem.version = "0.3.0"
  gem.date = "2019-04-29"
  gem.add_dependency "grpc-google-iam-v1", "~> 0.6.9"
end
`,
		},
		{
			name:     "no existing fields leaves generated untouched",
			existing: "Gem::Specification.new do |gem|\nend\n",
			generated: `Gem::Specification.new do |gem|
  gem.version = "0.1.0"
end
`,
			want: `Gem::Specification.new do |gem|
  gem.version = "0.1.0"
end
`,
		},
		{
			name: "generated without field ignores existing value",
			existing: `Gem::Specification.new do |gem|
  gem.date = "2019-04-29"
end
`,
			generated: "Gem::Specification.new do |gem|\nend\n",
			want:      "Gem::Specification.new do |gem|\nend\n",
		},
		{
			name: "only first occurrence replaced",
			existing: `gem.version = "2.0.0"
`,
			generated: `gem.version = "0.1.0"
# gem.version = "commented" is not a declaration but matches loosely
gem.version = "0.1.0"
`,
			want: `gem.version = "2.0.0"
# gem.version = "commented" is not a declaration but matches loosely
gem.version = "0.1.0"
`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := MergeGemspec(test.existing, test.generated)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatched output (-want, +got):\n%s", diff)
			}
		})
	}
}
