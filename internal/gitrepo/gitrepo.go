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

// Package gitrepo provides operations on git repos.
package gitrepo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Repo represents a git repository.
type Repo struct {
	Dir  string
	repo *git.Repository
}

// CloneOrOpen provides access to a Git repository.
//
// If a repository already exists at the specified directory path (dirpath),
// it opens and provides access to that repository.
//
// Otherwise, it clones the repository from the given URL (repoURL) and saves
// it to the specified directory path.
func CloneOrOpen(ctx context.Context, dirpath, repoURL string) (*Repo, error) {
	_, err := os.Stat(dirpath)
	if err == nil {
		return Open(ctx, dirpath)
	}
	if os.IsNotExist(err) {
		return Clone(ctx, dirpath, repoURL)
	}
	return nil, err
}

// Clone downloads a copy of a Git repository from repoURL and saves it to the
// specified directory at dirpath. The clone is shallow: synthesis only needs
// the current state of the API definitions, not their history.
func Clone(ctx context.Context, dirpath, repoURL string) (*Repo, error) {
	slog.Info(fmt.Sprintf("Cloning %q to %q", repoURL, dirpath))
	options := &git.CloneOptions{
		URL:           repoURL,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	}
	if ci := os.Getenv("CI"); ci == "" {
		options.Progress = os.Stdout // When not a CI build, output progress.
	}

	repo, err := git.PlainCloneContext(ctx, dirpath, false, options)
	if err != nil {
		return nil, err
	}
	return &Repo{
		Dir:  dirpath,
		repo: repo,
	}, nil
}

// Open provides access to a Git repository that exists at dirpath.
func Open(ctx context.Context, dirpath string) (*Repo, error) {
	repo, err := git.PlainOpen(dirpath)
	if err != nil {
		return nil, err
	}
	return &Repo{
		Dir:  dirpath,
		repo: repo,
	}, nil
}

// AddAll stages every change in the working tree and returns the resulting
// status.
func AddAll(ctx context.Context, repo *Repo) (git.Status, error) {
	worktree, err := repo.repo.Worktree()
	if err != nil {
		return git.Status{}, err
	}
	err = worktree.AddWithOptions(&git.AddOptions{All: true})
	if err != nil {
		return git.Status{}, err
	}
	return worktree.Status()
}

// Commit records the staged changes. It returns an error if there is nothing
// to commit.
func Commit(ctx context.Context, repo *Repo, msg string) error {
	worktree, err := repo.repo.Worktree()
	if err != nil {
		return err
	}

	status, err := worktree.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return fmt.Errorf("no modifications to commit")
	}
	commit, err := worktree.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Yoshi Automation Bot",
			Email: "yoshi-automation@google.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		return err
	}

	if slog.Default().Enabled(ctx, slog.LevelInfo.Level()) {
		obj, err := repo.repo.CommitObject(commit)
		if err != nil {
			return err
		}
		slog.Info(fmt.Sprint(obj))
	}
	return nil
}

// HeadHash returns the hash of the commit at HEAD.
func HeadHash(ctx context.Context, repo *Repo) (string, error) {
	headRef, err := repo.repo.Head()
	if err != nil {
		return "", err
	}
	return headRef.Hash().String(), nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func IsClean(ctx context.Context, repo *Repo) (bool, error) {
	worktree, err := repo.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := worktree.Status()
	if err != nil {
		return false, err
	}
	return status.IsClean(), nil
}

// CheckoutNewBranch creates the named branch at HEAD and switches the
// working tree to it.
func CheckoutNewBranch(ctx context.Context, repo *Repo, name string) error {
	worktree, err := repo.repo.Worktree()
	if err != nil {
		return err
	}
	return worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
}

// Push uploads the named branch to the origin remote. The access token is
// used for GitHub HTTPS remotes; pass an empty token for remotes that need
// no authentication.
func Push(ctx context.Context, repo *Repo, branch, accessToken string) error {
	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	options := &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	}
	if accessToken != "" {
		options.Auth = &githttp.BasicAuth{
			Username: "x-access-token",
			Password: accessToken,
		}
	}
	slog.Info("pushing branch", slog.String("branch", branch))
	return repo.repo.PushContext(ctx, options)
}

// Remotes returns the remotes configured for the repository.
func Remotes(repo *Repo) ([]*git.Remote, error) {
	return repo.repo.Remotes()
}
