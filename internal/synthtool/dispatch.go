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

import (
	"context"
	"flag"

	"github.com/googleapis/synthtool/internal/automation"
	"github.com/googleapis/synthtool/internal/cli"
)

var cmdDispatch = &cli.Command{
	Name:  "dispatch",
	Short: "dispatch triggers remote synthesis for every registered repository",
	Run: func(ctx context.Context) error {
		return automation.RunCommand(ctx, "synthesize", flagProject, flagPush, flagBuild)
	},
}

func init() {
	cmdDispatch.SetFlags([]func(fs *flag.FlagSet){
		addFlagProject,
		addFlagPush,
		addFlagBuild,
	})
}
