package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubChecker resolves repository heads through the GitHub API.
type GitHubChecker struct {
	client *github.Client
}

// NewGitHubChecker creates a checker. An empty token produces an
// unauthenticated client, which works for public repositories within
// GitHub's anonymous rate limits.
func NewGitHubChecker(token string) *GitHubChecker {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	return &GitHubChecker{client: github.NewClient(hc)}
}

// NewGitHubCheckerFromClient wraps an existing client, used when a
// GitHub App installation token has already been exchanged.
func NewGitHubCheckerFromClient(client *github.Client) *GitHubChecker {
	return &GitHubChecker{client: client}
}

// HeadSHA returns the SHA of the repository's default branch head.
func (c *GitHubChecker) HeadSHA(ctx context.Context, url string) (string, error) {
	owner, repo, err := ParseRepoFromURL(url)
	if err != nil {
		return "", fmt.Errorf("parse remote URL: %w", err)
	}

	sha, _, err := c.client.Repositories.GetCommitSHA1(ctx, owner, repo, "HEAD", "")
	if err != nil {
		return "", fmt.Errorf("resolve %s/%s head: %w", owner, repo, err)
	}
	return sha, nil
}
