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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/googleapis/synthtool/internal/cli"
	"github.com/googleapis/synthtool/internal/config"
	"github.com/googleapis/synthtool/internal/generator"
	"github.com/googleapis/synthtool/internal/github"
	"github.com/googleapis/synthtool/internal/gitrepo"
	"github.com/googleapis/synthtool/internal/metadata"
	"github.com/googleapis/synthtool/internal/postprocess"
	"github.com/googleapis/synthtool/internal/ruby"
)

var cmdSynthesize = &cli.Command{
	Name:  "synthesize",
	Short: "synthesize regenerates a client library from its API definitions",
	Run:   runSynthesize,
}

func init() {
	cmdSynthesize.SetFlags([]func(fs *flag.FlagSet){
		addFlagConfig,
		addFlagOutput,
		addFlagGoogleapisRoot,
		addFlagImage,
		addFlagWorkRoot,
		addFlagKeepWorkRoot,
		addFlagSkipBuild,
		addFlagPush,
		addFlagGitHubToken,
	})
}

// runSynthesize executes the whole pipeline strictly in order: load config,
// check out googleapis, generate each version, patch the copied output, write
// metadata, and optionally publish a pull request. Any failure aborts the run
// and leaves the working tree in place for inspection.
func runSynthesize(ctx context.Context) (err error) {
	configPath := flagConfig
	if configPath == "" {
		configPath = filepath.Join(flagOutput, config.LibraryFile)
	}
	library, err := config.Load(configPath)
	if err != nil {
		return err
	}

	workRoot, err := createWorkRoot(time.Now())
	if err != nil {
		return err
	}
	defer func() {
		if err == nil && !flagKeepWorkRoot {
			if rerr := os.RemoveAll(workRoot); rerr != nil {
				slog.Warn("failed to remove work root", slog.String("workRoot", workRoot), slog.Any("err", rerr))
			}
		}
	}()

	apiRepo, err := openGoogleapis(ctx, workRoot)
	if err != nil {
		return err
	}
	sha, err := gitrepo.HeadHash(ctx, apiRepo)
	if err != nil {
		return err
	}
	slog.Info("generating", slog.String("service", library.Service), slog.String("googleapis", sha))

	uid, gid := containerUser()
	gen := generator.New(flagImage, uid, gid)
	generated := map[string]string{}
	for _, v := range library.Versions {
		dir, err := gen.Generate(ctx, &generator.Request{
			Service:          library.Service,
			Version:          v.Name,
			ConfigPath:       v.Config,
			APIRoot:          apiRepo.Dir,
			Output:           filepath.Join(workRoot, "artman", v.Name),
			ArtmanOutputName: library.ArtmanOutputName,
		})
		if err != nil {
			return err
		}
		generated[v.Name] = dir
	}

	ws, err := postprocess.NewWorkspace(flagOutput)
	if err != nil {
		return err
	}
	pipeline, err := ruby.NewPipeline(library, generated, !flagSkipBuild)
	if err != nil {
		return err
	}
	if err := pipeline.Run(ws); err != nil {
		return err
	}
	if err := metadata.New(library, sha, flagImage, time.Now()).Write(flagOutput); err != nil {
		return err
	}

	if flagPush {
		return commitAndPush(ctx, library, sha)
	}
	return nil
}

func createWorkRoot(now time.Time) (string, error) {
	if flagWorkRoot != "" {
		slog.Info("Using specified working directory", slog.String("workRoot", flagWorkRoot))
		return flagWorkRoot, nil
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("synthtool-%s", now.Format("20060102T150405Z")))
	if err := os.Mkdir(path, 0755); err != nil {
		return "", fmt.Errorf("unable to create temporary working directory %s: %w", path, err)
	}
	slog.Info("Temporary working directory", slog.String("workRoot", path))
	return path, nil
}

func openGoogleapis(ctx context.Context, workRoot string) (*gitrepo.Repo, error) {
	if flagGoogleapisRoot != "" {
		return gitrepo.Open(ctx, flagGoogleapisRoot)
	}
	return gitrepo.CloneOrOpen(ctx, filepath.Join(workRoot, "googleapis"), config.GoogleapisURL)
}

// containerUser returns the current uid and gid as strings for the container
// --user flag, or empty strings where the platform has no such notion.
func containerUser() (string, string) {
	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return "", ""
	}
	return strconv.Itoa(uid), strconv.Itoa(gid)
}

func commitAndPush(ctx context.Context, library *config.Library, sha string) error {
	repo, err := gitrepo.Open(ctx, flagOutput)
	if err != nil {
		return err
	}
	clean, err := gitrepo.IsClean(ctx, repo)
	if err != nil {
		return err
	}
	if clean {
		slog.Info("no changes to push")
		return nil
	}

	token := flagGitHubToken
	if token == "" {
		token = os.Getenv("SYNTHTOOL_GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("-push requires a GitHub token")
	}

	branch := fmt.Sprintf("synthtool-%s", time.Now().UTC().Format("20060102150405"))
	if err := gitrepo.CheckoutNewBranch(ctx, repo, branch); err != nil {
		return err
	}
	if _, err := gitrepo.AddAll(ctx, repo); err != nil {
		return err
	}
	msg, err := metadata.CommitMessage(library, sha, flagImage)
	if err != nil {
		return err
	}
	if err := gitrepo.Commit(ctx, repo, msg); err != nil {
		return err
	}
	if err := gitrepo.Push(ctx, repo, branch, token); err != nil {
		return err
	}

	ghRepo, err := github.FetchGitHubRepoFromRemote(repo)
	if err != nil {
		return err
	}
	client, err := github.NewClient(token)
	if err != nil {
		return err
	}
	title, body, _ := strings.Cut(msg, "\n\n")
	pr, err := client.CreatePullRequest(ctx, ghRepo, branch, title, body)
	if err != nil {
		return err
	}
	slog.Info("created pull request", slog.Int("number", pr.Number))
	return nil
}
