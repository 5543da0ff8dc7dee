package remote

import (
	"context"
	"fmt"

	"github.com/xanzy/go-gitlab"
)

// GitLabChecker resolves repository heads through the GitLab API.
type GitLabChecker struct {
	client *gitlab.Client
}

// NewGitLabChecker creates a checker. baseURL is the instance URL,
// empty for gitlab.com. GitLab requires a token even for read access
// to most instances.
func NewGitLabChecker(token, baseURL string) (*GitLabChecker, error) {
	var client *gitlab.Client
	var err error

	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}
	return &GitLabChecker{client: client}, nil
}

// HeadSHA returns the SHA of the project's default branch head.
func (c *GitLabChecker) HeadSHA(ctx context.Context, url string) (string, error) {
	owner, repo, err := ParseRepoFromURL(url)
	if err != nil {
		return "", fmt.Errorf("parse remote URL: %w", err)
	}
	path := owner + "/" + repo

	project, _, err := c.client.Projects.GetProject(path, nil, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("get project %s: %w", path, err)
	}

	branch, _, err := c.client.Branches.GetBranch(path, project.DefaultBranch, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("get branch %s: %w", project.DefaultBranch, err)
	}
	if branch.Commit == nil {
		return "", fmt.Errorf("branch %s has no commit", project.DefaultBranch)
	}
	return branch.Commit.ID, nil
}
