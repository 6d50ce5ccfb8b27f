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

package synthtool

import "flag"

const defaultImage = "googleapis/artman:0.16.26"

var (
	flagConfig         string
	flagGoogleapisRoot string
	flagImage          string
	flagOutput         string
	flagWorkRoot       string
	flagKeepWorkRoot   bool
	flagSkipBuild      bool
	flagPush           bool
	flagGitHubToken    string

	flagProject string
	flagBuild   bool
)

func addFlagConfig(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "path of the library configuration file; defaults to .synthtool.toml under -output")
}

func addFlagGoogleapisRoot(fs *flag.FlagSet) {
	fs.StringVar(&flagGoogleapisRoot, "googleapis-root", "", "local googleapis checkout to generate from; cloned fresh when empty")
}

func addFlagImage(fs *flag.FlagSet) {
	fs.StringVar(&flagImage, "image", defaultImage, "generator container image")
}

func addFlagOutput(fs *flag.FlagSet) {
	fs.StringVar(&flagOutput, "output", ".", "root of the library repository to synthesize into")
}

func addFlagWorkRoot(fs *flag.FlagSet) {
	fs.StringVar(&flagWorkRoot, "work-root", "", "working directory root; defaults to a new directory under the system temp directory")
}

func addFlagKeepWorkRoot(fs *flag.FlagSet) {
	fs.BoolVar(&flagKeepWorkRoot, "keep-work-root", false, "keep the working directory after a successful run")
}

func addFlagSkipBuild(fs *flag.FlagSet) {
	fs.BoolVar(&flagSkipBuild, "skip-build", false, "skip the bundler partial regeneration step")
}

func addFlagPush(fs *flag.FlagSet) {
	fs.BoolVar(&flagPush, "push", false, "commit the synthesized changes and open a pull request")
}

func addFlagGitHubToken(fs *flag.FlagSet) {
	fs.StringVar(&flagGitHubToken, "github-token", "", "GitHub access token; defaults to $SYNTHTOOL_GITHUB_TOKEN")
}

func addFlagProject(fs *flag.FlagSet) {
	fs.StringVar(&flagProject, "project", "cloud-sdk-synthtool-prod", "GCP project owning the Cloud Build triggers")
}

func addFlagBuild(fs *flag.FlagSet) {
	fs.BoolVar(&flagBuild, "build", true, "the _BUILD substitution passed to the synthesize trigger")
}
