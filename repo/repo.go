package repo

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/agentcfg/config"
)

// Repo is one materialized hierarchy level.
type Repo interface {
	// Name is the hierarchy level name.
	Name() string

	// URL is the configured source URL.
	URL() string

	// Path is the local directory holding the level's files.
	Path() string

	// Exists reports whether the local directory is present.
	Exists() bool

	// NeedsUpdate reports whether the local copy is behind its source.
	NeedsUpdate(ctx context.Context) (bool, error)

	// Update brings the local copy up to date, materializing it first
	// if needed.
	Update(ctx context.Context) error
}

// HeadChecker resolves the current head commit of a remote repository
// without cloning it. Implementations live in the remote package.
type HeadChecker interface {
	HeadSHA(ctx context.Context, url string) (string, error)
}

// Option configures repository construction.
type Option func(*options)

type options struct {
	runner  CommandRunner
	checker HeadChecker
	logger  *slog.Logger
}

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

// WithHeadChecker sets a remote head resolver used to detect staleness
// without a network fetch through git.
func WithHeadChecker(checker HeadChecker) Option {
	return func(o *options) {
		o.checker = checker
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// urlShapes is the static detection table: URL prefixes and suffixes
// mapped to the backend types that can serve them. Checked in order;
// first match wins.
var urlShapes = []struct {
	match func(string) bool
	types []string
}{
	{func(u string) bool { return strings.HasPrefix(u, "file://") }, []string{"file"}},
	{func(u string) bool { return strings.HasPrefix(u, "git@") }, []string{"git"}},
	{func(u string) bool { return strings.HasPrefix(u, "ssh://") }, []string{"git"}},
	{func(u string) bool { return strings.HasPrefix(u, "git://") }, []string{"git"}},
	{func(u string) bool {
		return (strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")) &&
			(strings.HasSuffix(u, ".git") ||
				strings.Contains(u, "github.com") ||
				strings.Contains(u, "gitlab") ||
				strings.Contains(u, "bitbucket"))
	}, []string{"git"}},
	{func(u string) bool { return strings.HasPrefix(u, "/") || strings.HasPrefix(u, "./") || strings.HasPrefix(u, "~") }, []string{"file"}},
}

// Detect returns the backend types capable of serving a URL, most
// specific first. An empty result means the URL shape is unrecognized
// and the hierarchy entry must name its repo_type explicitly.
func Detect(url string) []string {
	for _, shape := range urlShapes {
		if shape.match(url) {
			return shape.types
		}
	}
	return nil
}

// New constructs the backend for a hierarchy entry. Git repositories
// are materialized under reposDir by level name.
func New(entry config.HierarchyEntry, reposDir string, opts ...Option) (Repo, error) {
	o := &options{
		runner: NewExecRunner(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	switch entry.RepoType {
	case "git":
		return &GitRepo{
			name:    entry.Name,
			url:     entry.URL,
			path:    filepath.Join(reposDir, entry.Name),
			runner:  o.runner,
			checker: o.checker,
			logger:  o.logger,
		}, nil
	case "file":
		return &LocalRepo{
			name: entry.Name,
			url:  entry.URL,
			path: strings.TrimPrefix(entry.URL, "file://"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q (level %q)", ErrUnsupportedType, entry.RepoType, entry.Name)
	}
}
