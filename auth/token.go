package auth

import (
	"fmt"
	"os"
)

// Environment variables consulted for tokens, in order.
var (
	githubTokenVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}
	gitlabTokenVars = []string{"GITLAB_TOKEN"}
)

// GitHubToken returns a GitHub token from the environment.
func GitHubToken() (string, error) {
	return tokenFromEnv("GitHub", githubTokenVars)
}

// GitLabToken returns a GitLab token from the environment.
func GitLabToken() (string, error) {
	return tokenFromEnv("GitLab", gitlabTokenVars)
}

// TokenForHost returns the environment token matching a repository
// host. Unrecognized hosts report ErrNoToken.
func TokenForHost(host string) (string, error) {
	switch host {
	case "github":
		return GitHubToken()
	case "gitlab":
		return GitLabToken()
	default:
		return "", fmt.Errorf("%w: unrecognized host %q", ErrNoToken, host)
	}
}

func tokenFromEnv(host string, vars []string) (string, error) {
	for _, v := range vars {
		if token := os.Getenv(v); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("%w: set %s for %s access", ErrNoToken, vars[0], host)
}
