package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHost indicates no checker recognizes the repository URL.
var ErrUnknownHost = errors.New("unknown repository host")

// Checker resolves the current head commit SHA of a remote repository.
type Checker interface {
	HeadSHA(ctx context.Context, url string) (string, error)
}

// HostOf classifies a repository URL by host ("github", "gitlab").
func HostOf(url string) (string, error) {
	lower := strings.ToLower(url)

	switch {
	case strings.Contains(lower, "github.com"):
		return "github", nil
	case strings.Contains(lower, "gitlab"):
		return "gitlab", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownHost, url)
	}
}

// Detect constructs a checker for the URL's host. Token may be empty
// for public repositories on GitHub; GitLab requires one.
func Detect(url, token string) (Checker, error) {
	host, err := HostOf(url)
	if err != nil {
		return nil, err
	}
	if host == "github" {
		return NewGitHubChecker(token), nil
	}
	return NewGitLabChecker(token, baseURLFromRemote(url))
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
// Handles both SSH (git@host:owner/repo.git) and HTTPS forms.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	if strings.HasPrefix(remoteURL, "git@") {
		parts := strings.Split(remoteURL, ":")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("invalid SSH URL format")
		}
		path := strings.TrimSuffix(parts[1], ".git")
		pathParts := strings.Split(path, "/")
		if len(pathParts) != 2 {
			return "", "", fmt.Errorf("invalid repository path")
		}
		return pathParts[0], pathParts[1], nil
	}

	remoteURL = strings.TrimPrefix(remoteURL, "https://")
	remoteURL = strings.TrimPrefix(remoteURL, "http://")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	parts := strings.Split(remoteURL, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("invalid URL format")
	}

	// Last two parts are owner/repo
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// baseURLFromRemote extracts the instance URL for self-hosted GitLab.
// Returns empty for gitlab.com, which the client defaults to.
func baseURLFromRemote(remoteURL string) string {
	if strings.Contains(remoteURL, "gitlab.com") {
		return ""
	}
	if after, ok := strings.CutPrefix(remoteURL, "git@"); ok {
		host, _, _ := strings.Cut(after, ":")
		return "https://" + host
	}
	remoteURL = strings.TrimPrefix(remoteURL, "https://")
	remoteURL = strings.TrimPrefix(remoteURL, "http://")
	host, _, _ := strings.Cut(remoteURL, "/")
	return "https://" + host
}
