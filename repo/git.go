package repo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// GitRepo is a hierarchy level backed by a cloned git repository.
type GitRepo struct {
	name    string
	url     string
	path    string
	runner  CommandRunner
	checker HeadChecker
	logger  *slog.Logger
}

func (r *GitRepo) Name() string { return r.name }
func (r *GitRepo) URL() string  { return r.url }
func (r *GitRepo) Path() string { return r.path }

func (r *GitRepo) Exists() bool {
	info, err := os.Stat(filepath.Join(r.path, ".git"))
	return err == nil && info.IsDir()
}

// NeedsUpdate compares the local HEAD against the remote head. Without
// a HeadChecker, or when the remote cannot be reached, it reports true
// so that Update decides.
func (r *GitRepo) NeedsUpdate(ctx context.Context) (bool, error) {
	if !r.Exists() {
		return true, nil
	}
	if r.checker == nil {
		return true, nil
	}

	local, err := r.runner.Run(r.path, "git", "rev-parse", "HEAD")
	if err != nil {
		return true, &Error{Op: "resolve local head", Name: r.name, Err: err}
	}
	remote, err := r.checker.HeadSHA(ctx, r.url)
	if err != nil {
		r.logger.Warn("Remote head check failed, assuming update needed",
			"repo", r.name, "error", err)
		return true, nil
	}
	return !strings.HasPrefix(remote, local) && !strings.HasPrefix(local, remote), nil
}

// Update clones the repository if it is not materialized yet, otherwise
// pulls. A remote URL that no longer matches the configuration is
// logged and left alone; the pull still runs against origin.
func (r *GitRepo) Update(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.Exists() {
		// A directory without .git means something else occupies the
		// clone target; cloning over it would fail with a worse message.
		if info, err := os.Stat(r.path); err == nil && info.IsDir() {
			return &Error{Op: "clone", Name: r.name, Err: fmt.Errorf("%w: %s", ErrNotGitRepo, r.path)}
		}
		return r.clone()
	}

	if current, err := r.runner.Run(r.path, "git", "remote", "get-url", "origin"); err == nil {
		if current != r.url {
			r.logger.Warn("Remote URL differs from configuration",
				"repo", r.name, "configured", r.url, "actual", current)
		}
	}

	if _, err := r.runner.Run(r.path, "git", "pull", "--ff-only"); err != nil {
		return &Error{Op: "pull", Name: r.name, Err: err}
	}
	return nil
}

func (r *GitRepo) clone() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return &Error{Op: "clone", Name: r.name, Err: err}
	}
	if _, err := r.runner.Run("", "git", "clone", r.url, r.path); err != nil {
		return &Error{Op: "clone", Name: r.name, Err: err}
	}
	return nil
}

// HeadCommit returns the local HEAD SHA.
func (r *GitRepo) HeadCommit() (string, error) {
	if !r.Exists() {
		return "", &Error{Op: "resolve local head", Name: r.name, Err: ErrNotMaterialized}
	}
	sha, err := r.runner.Run(r.path, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", &Error{Op: "resolve local head", Name: r.name, Err: err}
	}
	return sha, nil
}
