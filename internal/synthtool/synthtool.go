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

// Package synthtool contains the business logic for the synthtool CLI.
// Implementation details for interacting with other systems (git, GitHub,
// the generator container, Cloud Build) are abstracted into other packages.
package synthtool

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/googleapis/synthtool/internal/cli"
)

// Run executes the synthtool CLI with the given command line arguments.
func Run(ctx context.Context, arg ...string) error {
	fs := flag.NewFlagSet("synthtool", flag.ContinueOnError)
	commands := []*cli.Command{
		cmdSynthesize,
		cmdDispatch,
		cmdVersion,
	}

	output := `Synthtool regenerates Google Cloud client libraries from their API definitions.

Usage:

  synthtool <command> [arguments]

The commands are:
`
	for _, c := range commands {
		output += fmt.Sprintf("\n  %s  %s", c.Name, c.Short)
	}

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), output)
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\n\n")
	}

	if err := fs.Parse(arg); err != nil {
		return err
	}
	if len(fs.Args()) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	cmd, err := cli.Lookup(fs.Args()[0], commands)
	if err != nil {
		fs.Usage()
		return err
	}
	if err := cmd.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	slog.Info("synthtool", "command", cmd.Name)
	return cmd.Run(ctx)
}
